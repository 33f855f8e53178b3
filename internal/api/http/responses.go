package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"asociacion-backend/internal/domain"
	"asociacion-backend/internal/logger"
	"asociacion-backend/internal/service"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors to distinct HTTP statuses and stable
// codes so clients can show a precise message for each failure:
// "registration closed", "course full" and "already enrolled" call for
// different user actions.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeErrorCode(w, http.StatusBadRequest, "validation_error", ve.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeErrorCode(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		writeErrorCode(w, http.StatusConflict, "invalid_transition", "operation not allowed in the current status")
	case errors.Is(err, domain.ErrConflict):
		writeErrorCode(w, http.StatusConflict, "conflict", "a record with that email already exists")
	case errors.Is(err, domain.ErrRegistrationClosed):
		writeErrorCode(w, http.StatusUnprocessableEntity, "registration_closed", "registration is closed for this offering")
	case errors.Is(err, domain.ErrOfferingFull):
		writeErrorCode(w, http.StatusUnprocessableEntity, "offering_full", "no seats left for this offering")
	case errors.Is(err, domain.ErrDuplicateEnrollment):
		writeErrorCode(w, http.StatusConflict, "already_enrolled", "this email is already enrolled in the offering")
	case errors.Is(err, domain.ErrUnauthorized):
		writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		writeErrorCode(w, http.StatusForbidden, "forbidden", "admin role required")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeErrorCode(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	case errors.Is(err, service.ErrAccountInactive):
		writeErrorCode(w, http.StatusForbidden, "account_inactive", "this account has been deactivated")
	default:
		logger.Error("Unhandled error in HTTP layer", "error", err)
		writeErrorCode(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "validation_error", "malformed JSON body")
		return false
	}
	return true
}
