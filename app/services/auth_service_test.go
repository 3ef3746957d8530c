package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/app/repositories"
	"github.com/sommystore/storefront/pkg/bus"
	"github.com/sommystore/storefront/pkg/store"
)

// newAuthFixture wires an AuthService in local-fallback mode (no backend).
func newAuthFixture(t *testing.T) (*AuthService, *SessionService, *store.Store) {
	t.Helper()
	t.Setenv("API_BASE_URL", "")

	st := store.New(store.NewMemory())
	session := NewSessionService(st, bus.New())
	auth := NewAuthService(st, session, repositories.NewAuthRepository())
	return auth, session, st
}

func signUp(t *testing.T, auth *AuthService) models.Identity {
	t.Helper()
	identity, err := auth.SignUp(context.Background(), SignUpInput{
		Name:                 "Ada Lovelace",
		Email:                "Ada@Example.com",
		Phone:                "08012345678",
		Password:             "secret1",
		PasswordConfirmation: "secret1",
	})
	require.NoError(t, err)
	return identity
}

func TestSignUpSignsIn(t *testing.T) {
	auth, session, _ := newAuthFixture(t)

	identity := signUp(t, auth)

	assert.NotEmpty(t, identity.ID)
	assert.Equal(t, "ada@example.com", identity.Email, "emails are stored lowercase")
	assert.Equal(t, "2348012345678", identity.Phone, "leading zero replaced with country code")

	user := session.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, identity.ID, user.ID)
}

func TestSignUpValidation(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	_, err := auth.SignUp(context.Background(), SignUpInput{
		Name:                 "A",
		Email:                "nope",
		Password:             "short",
		PasswordConfirmation: "different",
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")
}

func TestSignUpRejectsDuplicate(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	signUp(t, auth)

	_, err := auth.SignUp(context.Background(), SignUpInput{
		Name:                 "Ada Again",
		Email:                "ADA@example.com",
		Password:             "secret2",
		PasswordConfirmation: "secret2",
	})
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestSignInByEmailAnyCase(t *testing.T) {
	auth, session, _ := newAuthFixture(t)
	signUp(t, auth)
	require.NoError(t, auth.SignOut())

	identity, err := auth.SignIn(context.Background(), SignInInput{
		Identifier: "ADA@EXAMPLE.COM",
		Password:   "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.NotNil(t, session.CurrentUser())
}

func TestSignInByPhoneAnyFormatting(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	signUp(t, auth)
	require.NoError(t, auth.SignOut())

	_, err := auth.SignIn(context.Background(), SignInInput{
		Identifier: "+234 (801) 234-5678",
		Password:   "secret1",
	})
	assert.NoError(t, err, "digits-only comparison ignores formatting")
}

func TestSignInWrongPassword(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	signUp(t, auth)

	_, err := auth.SignIn(context.Background(), SignInInput{
		Identifier: "ada@example.com",
		Password:   "wrong",
	})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestPasswordsAreHashed(t *testing.T) {
	auth, _, st := newAuthFixture(t)
	signUp(t, auth)

	users := []models.LocalUser{}
	require.True(t, st.Get(store.KeyUsers, &users))
	require.Len(t, users, 1)
	assert.NotContains(t, users[0].PasswordHash, "secret1")
	assert.NotEmpty(t, users[0].PasswordHash)
}

func TestAdminLocalSignIn(t *testing.T) {
	auth, session, _ := newAuthFixture(t)

	_, err := auth.AdminSignUp(context.Background(), AdminInput{Email: "boss@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, auth.AdminSignOut())

	identity, err := auth.AdminSignIn(context.Background(), AdminInput{Email: "boss@example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.True(t, identity.IsAdmin())
	assert.Equal(t, "local-token", identity.Token)
	require.NotNil(t, session.CurrentAdmin())
	assert.Nil(t, session.CurrentUser(), "admin sign-in does not touch the shopper entry")
}

func TestResetFlow(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	signUp(t, auth)

	token, err := auth.RequestReset("ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, auth.ResetPassword(token, "newsecret"))

	// Old password out, new one in.
	_, err = auth.SignIn(context.Background(), SignInInput{Identifier: "ada@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = auth.SignIn(context.Background(), SignInInput{Identifier: "ada@example.com", Password: "newsecret"})
	assert.NoError(t, err)

	// Tokens are single use.
	assert.ErrorIs(t, auth.ResetPassword(token, "another"), ErrResetInvalid)
}

func TestResetUnknownAccount(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	_, err := auth.RequestReset("ghost@example.com")
	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestResetExpiredToken(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	signUp(t, auth)

	token, err := auth.RequestReset("ada@example.com")
	require.NoError(t, err)

	auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.ErrorIs(t, auth.ResetPassword(token, "newsecret"), ErrResetExpired)

	// An expired token is also consumed.
	auth.now = time.Now
	assert.ErrorIs(t, auth.ResetPassword(token, "newsecret"), ErrResetInvalid)
}

func TestPhoneAlreadyInternational(t *testing.T) {
	assert.Equal(t, "2348012345678", normalizeSignupPhone("2348012345678"))
	assert.Equal(t, "2348012345678", normalizeSignupPhone("0801 234 5678"))
	assert.Equal(t, "", normalizeSignupPhone(""))
}
