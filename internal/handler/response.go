package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Benjafo/iconstore/internal/model"
	"github.com/Benjafo/iconstore/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps service errors onto the wire contract. The sentinel
// branches keep bodies constant per error kind, which matters for
// invalid_credentials: unknown email and wrong password must serialize to
// the exact same bytes.
func writeError(w http.ResponseWriter, err error) {
	body := &apierror.APIError{
		Kind:       "internal_error",
		Message:    "Unexpected server error",
		HTTPStatus: http.StatusInternalServerError,
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		body = apiErr
	} else if errors.Is(err, model.ErrInvalidCredentials) {
		body = apierror.New("invalid_credentials", "Invalid email or password", http.StatusUnauthorized)
	} else if errors.Is(err, model.ErrAccountDeactivated) {
		body = apierror.New("account_deactivated", "Account is deactivated", http.StatusUnauthorized)
	} else if errors.Is(err, model.ErrInvalidToken) {
		body = apierror.New("invalid_token", "Invalid or expired refresh token", http.StatusUnauthorized)
	} else if errors.Is(err, model.ErrTokenExpired) {
		body = apierror.New("token_expired", "Token has expired", http.StatusUnauthorized)
	} else if errors.Is(err, model.ErrInvalidUser) {
		body = apierror.New("invalid_user", "Account is no longer valid", http.StatusUnauthorized)
	} else if errors.Is(err, model.ErrUnauthorized) {
		body = apierror.New("unauthorized", "Authentication required", http.StatusUnauthorized)
	} else if errors.Is(err, model.ErrUserNotFound) {
		body = apierror.New("not_found", "User not found", http.StatusNotFound)
	} else if errors.Is(err, model.ErrPackNotFound) {
		body = apierror.New("not_found", "Icon pack not found", http.StatusNotFound)
	} else {
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, body.HTTPStatus, body)
}

func writeBadJSON(w http.ResponseWriter) {
	writeError(w, apierror.New("validation_error", "Request body must be valid JSON", http.StatusBadRequest))
}
