package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"goldantelope/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// serviceError maps the sentinel error taxonomy onto HTTP statuses.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnknownCountry),
		errors.Is(err, models.ErrUnknownCategory),
		errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrPhotoTooLarge),
		errors.Is(err, models.ErrCaptchaInvalid),
		errors.Is(err, models.ErrCodeMismatch),
		errors.Is(err, models.ErrCodeExpired),
		errors.Is(err, models.ErrCodeNotRequested),
		errors.Is(err, models.ErrChatIDUnknown):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrListingNotFound),
		errors.Is(err, models.ErrChannelNotFound),
		errors.Is(err, models.ErrBannerNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicate):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrRelayUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// countryParam resolves the country query parameter; an empty value is
// the default country.
func countryParam(r *http.Request) (models.Country, error) {
	return models.ParseCountry(r.URL.Query().Get("country"))
}

// categoryParam resolves the :category path segment, applying the
// request alias table.
func categoryParam(r *http.Request) (models.Category, error) {
	return models.ParseCategory(r.URL.Query().Get(":category"))
}
