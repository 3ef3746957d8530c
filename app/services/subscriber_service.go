package services

import (
	"context"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/app/repositories"
	"github.com/sommystore/storefront/pkg/collection"
	"github.com/sommystore/storefront/pkg/logger"
	"github.com/sommystore/storefront/pkg/store"
	"github.com/sommystore/storefront/pkg/validate"
)

// SubscriberService handles newsletter sign-ups. The backend call is best
// effort; when it is absent or failing the email is remembered in the local
// subscribers list so the footer form still works offline.
type SubscriberService struct {
	store *store.Store
	repo  *repositories.SubscriberRepository
}

func NewSubscriberService(s *store.Store, repo *repositories.SubscriberRepository) *SubscriberService {
	return &SubscriberService{store: s, repo: repo}
}

type subscribeInput struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe adds an email to the mailing list.
func (s *SubscriberService) Subscribe(ctx context.Context, email string) error {
	input := subscribeInput{Email: models.NormalizeEmail(email)}
	if errs := validate.Struct(&input); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}

	if s.repo.Available() {
		if err := s.repo.Subscribe(ctx, input.Email); err == nil {
			return nil
		} else {
			logger.Warn("subscribe: backend unavailable, keeping locally", "error", err)
		}
	}

	return s.remember(input.Email)
}

// Subscribers lists the locally remembered emails.
func (s *SubscriberService) Subscribers() []string {
	emails := []string{}
	s.store.Get(store.KeySubscribers, &emails)
	return emails
}

func (s *SubscriberService) remember(email string) error {
	emails := s.Subscribers()
	if collection.Contains(emails, func(e string) bool { return e == email }) {
		return ErrAlreadyMember
	}
	return s.store.Set(store.KeySubscribers, append(emails, email))
}
