// Package httpapi exposes the storefront HTTP API.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wuwei-shop/storefront/internal/domain"
)

// jsonError represents a JSON error payload.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message, Details: details})
}

// WriteDomainError maps a domain error onto the HTTP taxonomy:
// validation 400, not found 404, collaborator 502, anything else 500.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case domain.IsCollaborator(err):
		WriteJSONError(w, http.StatusBadGateway, "collaborator_error", err.Error())
	default:
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
