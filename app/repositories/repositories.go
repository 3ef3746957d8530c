// Package repositories is the data-access layer over the store backend's
// REST API. Each repository wraps a group of endpoints and surfaces backend
// failures as *APIError carrying the backend's own message text when it
// sends one.
package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/sommystore/storefront/config"
	"github.com/sommystore/storefront/pkg/http"
)

// APIError is a non-2xx backend response. Message holds the backend's
// message text when present, a generic fallback otherwise.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d: %s", e.Status, e.Message)
}

// apiError builds an *APIError from a response, preferring the backend's
// {"message": ...} body over the generic fallback.
func apiError(resp *http.Response, fallback string) error {
	msg := fallback

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Raw, &body); err == nil && body.Message != "" {
		msg = body.Message
	}

	return &APIError{Status: resp.StatusCode, Message: msg}
}

// baseURL returns the configured backend root, or "" when the client runs
// in local-fallback mode.
func baseURL() string {
	return config.APIBaseURL()
}
