package repositories

import (
	"context"
	"encoding/json"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/pkg/http"
)

// AuthRepository wraps the backend's auth endpoints.
type AuthRepository struct {
	base string
}

func NewAuthRepository() *AuthRepository {
	return &AuthRepository{base: baseURL()}
}

// Available reports whether a backend is configured; when false, callers
// fall back to the local credential directory.
func (r *AuthRepository) Available() bool {
	return r.base != ""
}

// loginResponse tolerates both response shapes the backend has used:
// {token, user:{...}} and a flat identity object.
type loginResponse struct {
	Token string           `json:"token"`
	User  *models.Identity `json:"user"`
}

func (lr loginResponse) identity(raw []byte) models.Identity {
	if lr.User != nil {
		id := *lr.User
		if id.Token == "" {
			id.Token = lr.Token
		}
		return id
	}

	var flat models.Identity
	_ = json.Unmarshal(raw, &flat)
	if flat.Token == "" {
		flat.Token = lr.Token
	}
	return flat
}

// Login signs a shopper in. identifier may be an email or a phone number.
func (r *AuthRepository) Login(ctx context.Context, identifier, password string) (models.Identity, error) {
	return r.post(ctx, "/api/auth/login", map[string]string{
		"identifier": identifier,
		"password":   password,
	}, "Invalid credentials")
}

// Register creates a shopper account and returns the signed-in identity.
func (r *AuthRepository) Register(ctx context.Context, name, email, phone, password string) (models.Identity, error) {
	return r.post(ctx, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"phone":    phone,
		"password": password,
	}, "Signup failed")
}

// AdminLogin signs an admin in; the returned identity carries the bearer
// token for the admin endpoints.
func (r *AuthRepository) AdminLogin(ctx context.Context, email, password string) (models.Identity, error) {
	id, err := r.post(ctx, "/api/auth/admin/login", map[string]string{
		"email":    email,
		"password": password,
	}, "Admin login failed")
	if err == nil {
		id.Role = "admin"
	}
	return id, err
}

// AdminRegister creates an admin account.
func (r *AuthRepository) AdminRegister(ctx context.Context, email, password string) (models.Identity, error) {
	id, err := r.post(ctx, "/api/auth/admin/register", map[string]string{
		"email":    email,
		"password": password,
	}, "Admin registration failed")
	if err == nil {
		id.Role = "admin"
	}
	return id, err
}

func (r *AuthRepository) post(ctx context.Context, path string, body map[string]string, fallback string) (models.Identity, error) {
	var identity models.Identity

	resp, err := http.Post(r.base + path).WithContext(ctx).Body(body).Send()
	if err != nil {
		return identity, err
	}
	if !resp.OK() {
		return identity, apiError(resp, fallback)
	}

	var lr loginResponse
	if err := resp.JSON(&lr); err != nil {
		return identity, err
	}
	return lr.identity(resp.Raw), nil
}
