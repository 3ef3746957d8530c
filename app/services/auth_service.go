package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/app/repositories"
	"github.com/sommystore/storefront/pkg/auth"
	"github.com/sommystore/storefront/pkg/logger"
	"github.com/sommystore/storefront/pkg/store"
	"github.com/sommystore/storefront/pkg/validate"
)

const resetTokenTTL = time.Hour

// AuthService signs shoppers and admins in and out. With a backend
// configured it defers to the auth endpoints; without one it falls back to
// the local credential directory kept in the store (`users` / `admins`).
type AuthService struct {
	store   *store.Store
	session *SessionService
	repo    *repositories.AuthRepository

	now func() time.Time
}

func NewAuthService(s *store.Store, session *SessionService, repo *repositories.AuthRepository) *AuthService {
	return &AuthService{store: s, session: session, repo: repo, now: time.Now}
}

// SignInInput is the shopper sign-in form. Identifier is an email or phone.
type SignInInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

// SignUpInput is the shopper registration form.
type SignUpInput struct {
	Name                 string `json:"name"                  validate:"required,min=2,max=100"`
	Email                string `json:"email"                 validate:"required,email"`
	Phone                string `json:"phone"                 validate:"nullable,digits_between=7;15"`
	Password             string `json:"password"              validate:"required,min=6,confirmed"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// AdminInput is the admin sign-in / registration form.
type AdminInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignIn authenticates a shopper and stores the identity under the user
// topic. Validation failures never reach the network.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (models.Identity, error) {
	if errs := validate.Struct(&input); validate.HasErrors(errs) {
		return models.Identity{}, &ValidationError{Fields: errs}
	}

	var identity models.Identity

	if s.repo.Available() {
		found, err := s.repo.Login(ctx, strings.TrimSpace(input.Identifier), input.Password)
		if err != nil {
			return models.Identity{}, err
		}
		identity = found
	} else {
		found, err := s.localSignIn(store.KeyUsers, input.Identifier, input.Password)
		if err != nil {
			return models.Identity{}, err
		}
		identity = found
	}

	if err := s.session.SignInUser(identity); err != nil {
		return models.Identity{}, err
	}
	return identity, nil
}

// SignUp registers a shopper and signs them in. The phone number is
// normalized to its international form before it leaves the client.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (models.Identity, error) {
	if errs := validate.Struct(&input); validate.HasErrors(errs) {
		return models.Identity{}, &ValidationError{Fields: errs}
	}

	phone := normalizeSignupPhone(input.Phone)

	var identity models.Identity

	if s.repo.Available() {
		found, err := s.repo.Register(ctx, input.Name, input.Email, phone, input.Password)
		if err != nil {
			return models.Identity{}, err
		}
		identity = found
	} else {
		found, err := s.localSignUp(input.Name, input.Email, phone, input.Password)
		if err != nil {
			return models.Identity{}, err
		}
		identity = found
	}

	if err := s.session.SignInUser(identity); err != nil {
		return models.Identity{}, err
	}
	return identity, nil
}

// SignOut destroys the shopper session.
func (s *AuthService) SignOut() error {
	return s.session.SignOutUser()
}

// AdminSignIn authenticates an admin and stores the identity (with its
// bearer token) under the admin topic.
func (s *AuthService) AdminSignIn(ctx context.Context, input AdminInput) (models.Identity, error) {
	if errs := validate.Struct(&input); validate.HasErrors(errs) {
		return models.Identity{}, &ValidationError{Fields: errs}
	}

	var identity models.Identity

	if s.repo.Available() {
		found, err := s.repo.AdminLogin(ctx, models.NormalizeEmail(input.Email), input.Password)
		if err != nil {
			return models.Identity{}, err
		}
		identity = found
	} else {
		found, err := s.localSignIn(store.KeyAdmins, input.Email, input.Password)
		if err != nil {
			return models.Identity{}, err
		}
		found.Role = "admin"
		found.Token = "local-token"
		identity = found
	}

	if err := s.session.SignInAdmin(identity); err != nil {
		return models.Identity{}, err
	}
	return identity, nil
}

// AdminSignUp registers an admin account and signs it in.
func (s *AuthService) AdminSignUp(ctx context.Context, input AdminInput) (models.Identity, error) {
	if errs := validate.Struct(&input); validate.HasErrors(errs) {
		return models.Identity{}, &ValidationError{Fields: errs}
	}

	var identity models.Identity

	if s.repo.Available() {
		found, err := s.repo.AdminRegister(ctx, models.NormalizeEmail(input.Email), input.Password)
		if err != nil {
			return models.Identity{}, err
		}
		identity = found
	} else {
		if _, err := s.localSignUpDirectory(store.KeyAdmins, "", input.Email, "", input.Password); err != nil {
			return models.Identity{}, err
		}
		identity = models.Identity{Email: models.NormalizeEmail(input.Email), Role: "admin", Token: "local-token"}
	}

	if err := s.session.SignInAdmin(identity); err != nil {
		return models.Identity{}, err
	}
	return identity, nil
}

// AdminSignOut destroys the admin session.
func (s *AuthService) AdminSignOut() error {
	return s.session.SignOutAdmin()
}

// AdminToken returns a bearer token fit to send to the admin endpoints.
// An expired cached token signs the admin out rather than sending a request
// the backend would reject anyway.
func (s *AuthService) AdminToken() (string, error) {
	admin := s.session.CurrentAdmin()
	if admin == nil || admin.Token == "" {
		return "", ErrNotAdmin
	}

	if err := auth.CheckToken(admin.Token); err != nil {
		logger.Warn("auth: cached admin token expired, signing out")
		if serr := s.session.SignOutAdmin(); serr != nil {
			return "", serr
		}
		return "", ErrNotAdmin
	}

	return admin.Token, nil
}

// RequestReset starts a password reset for a local-directory account and
// returns the single-use token. With a backend configured the reset flow
// lives server-side and this returns ErrBackendRequired.
func (s *AuthService) RequestReset(identifier string) (string, error) {
	if s.repo.Available() {
		return "", ErrBackendRequired
	}

	users := s.directory(store.KeyUsers)
	found := false
	for _, u := range users {
		if u.Matches(identifier) {
			found = true
			break
		}
	}
	if !found {
		return "", ErrUnknownAccount
	}

	resets := map[string]models.PasswordReset{}
	s.store.Get(store.KeyResets, &resets)

	token := uuid.NewString()
	resets[token] = models.PasswordReset{
		Identifier: identifier,
		ExpiresAt:  s.now().Add(resetTokenTTL),
	}

	if err := s.store.Set(store.KeyResets, resets); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consumes a reset token and replaces the matching local
// account's password hash.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 6 {
		return &ValidationError{Fields: map[string]string{"password": "password must be at least 6 characters"}}
	}

	resets := map[string]models.PasswordReset{}
	s.store.Get(store.KeyResets, &resets)

	grant, ok := resets[token]
	if !ok {
		return ErrResetInvalid
	}
	if grant.Expired(s.now()) {
		delete(resets, token)
		_ = s.store.Set(store.KeyResets, resets)
		return ErrResetExpired
	}

	users := s.directory(store.KeyUsers)
	idx := -1
	for i, u := range users {
		if u.Matches(grant.Identifier) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users[idx].PasswordHash = string(hash)

	if err := s.store.Set(store.KeyUsers, users); err != nil {
		return err
	}

	delete(resets, token)
	return s.store.Set(store.KeyResets, resets)
}

// ── Local fallback directory ────────────────────────────────────────────────

func (s *AuthService) directory(key string) []models.LocalUser {
	users := []models.LocalUser{}
	s.store.Get(key, &users)
	return users
}

func (s *AuthService) localSignIn(key, identifier, password string) (models.Identity, error) {
	for _, u := range s.directory(key) {
		if !u.Matches(identifier) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			break
		}
		return models.Identity{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}, nil
	}
	return models.Identity{}, ErrBadCredentials
}

func (s *AuthService) localSignUp(name, email, phone, password string) (models.Identity, error) {
	rec, err := s.localSignUpDirectory(store.KeyUsers, name, email, phone, password)
	if err != nil {
		return models.Identity{}, err
	}
	return models.Identity{ID: rec.ID, Name: rec.Name, Email: rec.Email, Phone: rec.Phone}, nil
}

func (s *AuthService) localSignUpDirectory(key, name, email, phone, password string) (models.LocalUser, error) {
	email = models.NormalizeEmail(email)

	users := s.directory(key)
	for _, u := range users {
		if u.Matches(email) || (phone != "" && u.Matches(phone)) {
			return models.LocalUser{}, ErrAlreadyMember
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.LocalUser{}, err
	}

	rec := models.LocalUser{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	users = append(users, rec)

	if err := s.store.Set(key, users); err != nil {
		return models.LocalUser{}, err
	}
	return rec, nil
}

// normalizeSignupPhone prepends the country code and strips leading zeros,
// matching what the backend expects ("0801..." → "234801...").
func normalizeSignupPhone(phone string) string {
	digits := models.NormalizePhone(phone)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, "234") {
		return digits
	}
	return "234" + strings.TrimLeft(digits, "0")
}
