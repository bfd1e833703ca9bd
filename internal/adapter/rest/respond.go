package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/estatehub/listing-service/internal/listing/domain"
	"github.com/estatehub/listing-service/internal/user"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps domain errors onto the HTTP taxonomy: validation 400,
// forbidden 403, not found 404, bad credentials 401, everything else 500
// with a generic body.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondMessage(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, domain.ErrListingNotFound):
		respondMessage(w, http.StatusNotFound, "Property not found")
	case errors.Is(err, user.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrForbidden):
		respondMessage(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, user.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "please authenticate"})
	case errors.Is(err, user.ErrEmailTaken):
		respondMessage(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
