package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"chitraboard/internal/drafts"
	"chitraboard/internal/service"
	"chitraboard/internal/validation"
)

const (
	SessionCookieName = "session_id"

	ErrInvalidJSONBody     = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors onto HTTP status codes.
// Unrecognized errors are logged and hidden behind a 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr validation.Error
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, verr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionExpired):
		respondError(w, http.StatusUnauthorized, ErrUnauthorized)
	case errors.Is(err, service.ErrUsernameTaken):
		respondError(w, http.StatusConflict, "Username is already taken")
	case errors.Is(err, service.ErrEmailTaken):
		respondError(w, http.StatusConflict, "Email is already registered")
	case errors.Is(err, service.ErrAlreadyPurchased):
		respondError(w, http.StatusConflict, "Resource already purchased")
	case errors.Is(err, service.ErrPurchaseRequired):
		respondError(w, http.StatusPaymentRequired, "Purchase required")
	case errors.Is(err, service.ErrNotYours):
		respondError(w, http.StatusForbidden, "Not the owner of this item")
	case errors.Is(err, service.ErrNotAChild):
		respondError(w, http.StatusBadRequest, "Not a child account")
	case errors.Is(err, service.ErrNotStarted):
		respondError(w, http.StatusConflict, "Assignment has not been opened yet")
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrActivityNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrResourceNotFound),
		errors.Is(err, drafts.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrShareTokenExpired):
		respondError(w, http.StatusGone, "Share link has expired")
	case errors.Is(err, service.ErrShareTokenInvalid), errors.Is(err, service.ErrShareKindInvalid):
		respondError(w, http.StatusBadRequest, "Invalid share link")
	default:
		log.Printf("Unhandled service error: %v", err)
		respondError(w, http.StatusInternalServerError, ErrInternalServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, ErrInvalidJSONBody)
		return false
	}
	return true
}
