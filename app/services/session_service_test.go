package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/pkg/bus"
	"github.com/sommystore/storefront/pkg/store"
)

func newSessionFixture(t *testing.T) (*SessionService, *bus.Bus) {
	t.Helper()
	b := bus.New()
	return NewSessionService(store.New(store.NewMemory()), b), b
}

func TestSignedOutByDefault(t *testing.T) {
	session, _ := newSessionFixture(t)

	assert.Nil(t, session.CurrentUser())
	assert.Nil(t, session.CurrentAdmin())
	assert.Nil(t, session.Active())
}

func TestSignInUserRoundTrip(t *testing.T) {
	session, _ := newSessionFixture(t)

	require.NoError(t, session.SignInUser(models.Identity{ID: "u1", Email: "ada@example.com"}))

	user := session.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "ada", user.DisplayName())
}

func TestAdminPrecedence(t *testing.T) {
	session, _ := newSessionFixture(t)

	require.NoError(t, session.SignInUser(models.Identity{Email: "shopper@example.com"}))
	require.NoError(t, session.SignInAdmin(models.Identity{Email: "boss@example.com", Role: "admin"}))

	active := session.Active()
	require.NotNil(t, active)
	assert.True(t, active.IsAdmin(), "admin wins when both are signed in")
	assert.Equal(t, "boss", active.DisplayName())

	// Dropping the admin falls back to the shopper, untouched.
	require.NoError(t, session.SignOutAdmin())
	active = session.Active()
	require.NotNil(t, active)
	assert.Equal(t, "shopper", active.DisplayName())
}

func TestSignOutPublishesNil(t *testing.T) {
	session, b := newSessionFixture(t)

	var payloads []interface{}
	b.Subscribe(bus.TopicUser, func(p interface{}) { payloads = append(payloads, p) })

	require.NoError(t, session.SignInUser(models.Identity{ID: "u1"}))
	require.NoError(t, session.SignOutUser())

	require.Len(t, payloads, 2)
	assert.NotNil(t, payloads[0])
	assert.Nil(t, payloads[1], "sign-out announces nil so surfaces re-read the store")
	assert.Nil(t, session.CurrentUser())
}

func TestSessionsAreIndependent(t *testing.T) {
	session, _ := newSessionFixture(t)

	require.NoError(t, session.SignInUser(models.Identity{ID: "u1"}))
	require.NoError(t, session.SignInAdmin(models.Identity{ID: "a1", Role: "admin"}))
	require.NoError(t, session.SignOutUser())

	assert.Nil(t, session.CurrentUser())
	require.NotNil(t, session.CurrentAdmin())
	assert.Equal(t, "a1", session.CurrentAdmin().ID)
}

func TestStoredNullReadsAsSignedOut(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Set(store.KeyUser, []byte("null")))
	session := NewSessionService(store.New(mem), bus.New())

	assert.Nil(t, session.CurrentUser())
	assert.Nil(t, session.Active())
}
