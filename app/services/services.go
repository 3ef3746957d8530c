// Package services implements the client's flows over the persistent store,
// the change notifier and the backend repositories.
//
// Mutating operations follow one ordering rule throughout: persist first,
// publish second. A subscriber never sees a notification for state that is
// not yet durable, and a failed persist publishes nothing, leaving prior
// state untouched.
package services

import (
	"errors"
	"strings"
)

var (
	ErrSignedOut       = errors.New("not signed in")
	ErrNotAdmin        = errors.New("admin sign-in required")
	ErrLineNotFound    = errors.New("no cart line at that position")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrBadCredentials  = errors.New("invalid email/phone or password")
	ErrAlreadyMember   = errors.New("already a member")
	ErrNotCancellable  = errors.New("order can no longer be cancelled")
	ErrBadTransition   = errors.New("status change not allowed")
	ErrResetInvalid    = errors.New("unknown or used reset token")
	ErrResetExpired    = errors.New("reset token expired")
	ErrUnknownAccount  = errors.New("no account matches that identifier")
	ErrBackendRequired = errors.New("no backend configured for this operation")
)

// ValidationError carries field-level messages for form input that never
// reached the network layer.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
