// Package store persists the client's named state records (cart, session
// identities, local fallback lists) as whole JSON values under string keys.
//
// Every write replaces the full value for its key — last write wins, no
// field-level merging. Reads never fail outward: a missing or corrupt entry
// leaves the destination at whatever default the caller initialised it to.
//
// Usage:
//
//	s, _ := store.Open()
//	var cart []models.CartLine        // default: empty
//	s.Get(store.KeyCart, &cart)
//	s.Set(store.KeyCart, cart)
package store

import (
	"encoding/json"
	"fmt"

	"github.com/sommystore/storefront/config"
	"github.com/sommystore/storefront/pkg/logger"
	"github.com/sommystore/storefront/pkg/metrics"
)

// Well-known keys. The first three double as change-notification topics.
const (
	KeyCart        = "cart"
	KeyUser        = "user"
	KeyAdmin       = "admin"
	KeyUsers       = "users"
	KeyAdmins      = "admins"
	KeySubscribers = "subscribers"
	KeyResets      = "pw_resets"
)

// Driver is the raw byte-level backend. Get reports false when the key is
// absent; Set overwrites any previous value wholesale.
type Driver interface {
	Get(key string) ([]byte, bool)
	Set(key string, raw []byte) error
	Remove(key string) error
}

// Store wraps a Driver with JSON (de)serialisation and defaulting.
type Store struct {
	driver Driver
}

// New builds a Store over the given driver. Tests typically pass NewMemory().
func New(d Driver) *Store {
	return &Store{driver: d}
}

// Open builds a Store using the configured driver (file, memory or redis).
func Open() (*Store, error) {
	switch config.StoreDriver() {
	case "memory":
		return New(NewMemory()), nil
	case "redis":
		d, err := NewRedis()
		if err != nil {
			return nil, err
		}
		return New(d), nil
	default:
		d, err := NewFile(config.StoreRoot())
		if err != nil {
			return nil, err
		}
		return New(d), nil
	}
}

// Get reads the value stored under key into dest. It reports false — and
// leaves dest untouched — when the key is absent or the stored JSON does not
// parse, so callers fall back to the default they initialised dest with.
func (s *Store) Get(key string, dest interface{}) bool {
	metrics.StoreReads.WithLabelValues(key).Inc()

	raw, ok := s.driver.Get(key)
	if !ok {
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// Corrupt entry: recover silently with the caller's default.
		logger.Warn("store: corrupt entry, using default", "key", key, "error", err)
		return false
	}

	return true
}

// Set serialises value and overwrites the entry under key.
func (s *Store) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", key, err)
	}

	if err := s.driver.Set(key, raw); err != nil {
		return fmt.Errorf("store: set %s: %w", key, err)
	}

	metrics.StoreWrites.WithLabelValues(key).Inc()
	return nil
}

// Remove deletes the entry under key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	if err := s.driver.Remove(key); err != nil {
		return fmt.Errorf("store: remove %s: %w", key, err)
	}

	metrics.StoreWrites.WithLabelValues(key).Inc()
	return nil
}
