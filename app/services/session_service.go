package services

import (
	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/pkg/bus"
	"github.com/sommystore/storefront/pkg/store"
)

// SessionService tracks the signed-in shopper and admin identities. Both may
// be stored at once; Active applies the precedence rule for navigation
// display (admin wins).
type SessionService struct {
	store *store.Store
	bus   *bus.Bus
}

func NewSessionService(s *store.Store, b *bus.Bus) *SessionService {
	return &SessionService{store: s, bus: b}
}

// CurrentUser returns the cached shopper identity, or nil when signed out.
// A stored JSON null reads the same as an absent entry.
func (s *SessionService) CurrentUser() *models.Identity {
	var id *models.Identity
	s.store.Get(store.KeyUser, &id)
	return id
}

// CurrentAdmin returns the cached admin identity, or nil when signed out.
func (s *SessionService) CurrentAdmin() *models.Identity {
	var id *models.Identity
	s.store.Get(store.KeyAdmin, &id)
	return id
}

// Active returns the identity the navigation should render: the admin when
// one is signed in, regardless of any shopper identity also stored.
func (s *SessionService) Active() *models.Identity {
	if admin := s.CurrentAdmin(); admin != nil {
		return admin
	}
	return s.CurrentUser()
}

// SignInUser persists identity under the user topic and announces it.
func (s *SessionService) SignInUser(identity models.Identity) error {
	if err := s.store.Set(store.KeyUser, identity); err != nil {
		return err
	}
	s.bus.Publish(bus.TopicUser, &identity)
	return nil
}

// SignInAdmin persists identity under the admin topic and announces it.
func (s *SessionService) SignInAdmin(identity models.Identity) error {
	if err := s.store.Set(store.KeyAdmin, identity); err != nil {
		return err
	}
	s.bus.Publish(bus.TopicAdmin, &identity)
	return nil
}

// SignOutUser removes the shopper entry and publishes nil so every surface
// drops to the signed-out rendering.
func (s *SessionService) SignOutUser() error {
	if err := s.store.Remove(store.KeyUser); err != nil {
		return err
	}
	s.bus.Publish(bus.TopicUser, nil)
	return nil
}

// SignOutAdmin removes the admin entry and publishes nil.
func (s *SessionService) SignOutAdmin() error {
	if err := s.store.Remove(store.KeyAdmin); err != nil {
		return err
	}
	s.bus.Publish(bus.TopicAdmin, nil)
	return nil
}
