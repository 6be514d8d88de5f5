package apierror

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is the wire shape every failed request serializes to. Kind is a
// stable machine-readable identifier, Details carries per-field issues for
// validation and conflict responses.
type APIError struct {
	Kind       string            `json:"error"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if len(e.Details) > 0 {
		fields := make([]string, 0, len(e.Details))
		for f := range e.Details {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, strings.Join(fields, ", "))
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind string, message string, status int) *APIError {
	return &APIError{Kind: kind, Message: message, HTTPStatus: status}
}

// Validation builds a 400 response carrying field-level issues.
func Validation(details map[string]string) *APIError {
	return &APIError{
		Kind:       "validation_error",
		Message:    "Request validation failed",
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Conflict builds a 409 response carrying the fields that collided.
func Conflict(details map[string]string) *APIError {
	return &APIError{
		Kind:       "conflict",
		Message:    "Resource already exists",
		Details:    details,
		HTTPStatus: http.StatusConflict,
	}
}
