package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Taraansh/e-commerce/internal/platform/auth"
	"github.com/Taraansh/e-commerce/internal/repository"
	"github.com/Taraansh/e-commerce/internal/service"
)

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, message string, result interface{}) {
	writeJSON(w, status, envelope{Success: true, Message: message, Result: result})
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFromError(err), envelope{Success: false, Message: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailNotVerified),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrAdminCreateForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrInvalidOtp),
		errors.Is(err, service.ErrOtpExpired),
		errors.Is(err, service.ErrAlreadyVerified),
		errors.Is(err, service.ErrNothingToUpdate),
		errors.Is(err, service.ErrInvalidCurrentPassword),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrProductNotPurchased),
		errors.Is(err, service.ErrNoItemsAvailable),
		errors.Is(err, service.ErrInvalidSignature),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("invalid request body")
