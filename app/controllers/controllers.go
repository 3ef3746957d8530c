// Package controllers exposes the client's state and flows over the console
// server's HTTP API.
package controllers

import (
	"errors"
	"net/http"

	"github.com/sommystore/storefront/app/repositories"
	"github.com/sommystore/storefront/app/services"
	"github.com/sommystore/storefront/pkg/response"
)

// fail maps a service or repository error onto the right HTTP response.
func fail(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		response.ValidationError(w, ve.Fields)
		return
	}

	var apiErr *repositories.APIError
	if errors.As(err, &apiErr) {
		response.Error(w, apiErr.Status, apiErr.Message)
		return
	}

	switch {
	case errors.Is(err, services.ErrSignedOut), errors.Is(err, services.ErrNotAdmin):
		response.Unauthorized(w)
	case errors.Is(err, services.ErrBadCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrLineNotFound),
		errors.Is(err, services.ErrResetInvalid),
		errors.Is(err, services.ErrUnknownAccount):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyMember):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrNotCancellable),
		errors.Is(err, services.ErrBadTransition),
		errors.Is(err, services.ErrResetExpired),
		errors.Is(err, services.ErrBackendRequired):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, err.Error())
	}
}
