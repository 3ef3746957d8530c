package models

import (
	"strings"
	"time"
)

// Identity is the cached shopper or admin credentials kept client-side after
// sign-in. At most one of each may be stored; when both exist the admin
// identity takes precedence for navigation display.
type Identity struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
	Token string `json:"token,omitempty"`
}

// DisplayName is what the navigation greets the signed-in person with:
// the email local part, else the phone number, else a generic label.
func (i Identity) DisplayName() string {
	if i.Email != "" {
		return strings.SplitN(i.Email, "@", 2)[0]
	}
	if i.Phone != "" {
		return i.Phone
	}
	return "User"
}

// IsAdmin reports whether this identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

// LocalUser is a credential record in the local fallback directory (`users`
// or `admins`), used when no backend is configured. Passwords are stored as
// bcrypt hashes, never plaintext.
type LocalUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PasswordReset is a pending local password-reset grant, keyed by its token
// in the `pw_resets` record.
type PasswordReset struct {
	Identifier string    `json:"identifier"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Expired reports whether the reset grant is no longer usable.
func (r PasswordReset) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// NormalizeEmail lowercases and trims an email identifier.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone strips every non-digit so "+234 801-234-5678" and
// "2348012345678" compare equal.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Matches reports whether identifier (an email or phone in any formatting)
// refers to this record.
func (u LocalUser) Matches(identifier string) bool {
	id := strings.TrimSpace(identifier)
	if id == "" {
		return false
	}

	if u.Email != "" && NormalizeEmail(u.Email) == NormalizeEmail(id) {
		return true
	}

	phone := NormalizePhone(id)
	return u.Phone != "" && phone != "" && NormalizePhone(u.Phone) == phone
}
