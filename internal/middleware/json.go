package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody mirrors the handler layer's error contract so middleware
// rejections look identical to handler rejections on the wire.
type errorBody struct {
	Kind       string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int64  `json:"retry_after,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
