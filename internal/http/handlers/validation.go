package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
)

// validationErrors unpacks a rejected add into its field errors.
func validationErrors(err error) ([]catalog.FieldError, bool) {
	var verr *catalog.ValidationError
	if !errors.As(err, &verr) {
		return nil, false
	}
	return verr.Fields, true
}

// confirmationStatus maps confirmation failures to HTTP statuses.
func confirmationStatus(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrConfirmationNotFound):
		return http.StatusNotFound, "confirmation not found"
	case errors.Is(err, catalog.ErrConfirmationExpired):
		return http.StatusGone, "confirmation expired"
	default:
		return http.StatusInternalServerError, "could not apply confirmation"
	}
}
