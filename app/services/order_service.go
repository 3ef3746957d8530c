package services

import (
	"context"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/app/presenters"
	"github.com/sommystore/storefront/app/repositories"
)

// OrderService reads and mutates orders through the backend on behalf of the
// current session. It owns no storage of its own; orders are never cached
// client-side.
type OrderService struct {
	session *SessionService
	auth    *AuthService
	repo    *repositories.OrderRepository
}

func NewOrderService(session *SessionService, auth *AuthService, repo *repositories.OrderRepository) *OrderService {
	return &OrderService{session: session, auth: auth, repo: repo}
}

// ForCurrentUser fetches the signed-in shopper's orders.
func (s *OrderService) ForCurrentUser(ctx context.Context) ([]models.Order, error) {
	user := s.session.CurrentUser()
	if user == nil || user.ID == "" {
		return nil, ErrSignedOut
	}
	if !s.repo.Available() {
		return nil, ErrBackendRequired
	}
	return s.repo.ForUser(ctx, user.ID)
}

// AllForAdmin fetches every order using the cached admin token.
func (s *OrderService) AllForAdmin(ctx context.Context) ([]models.Order, error) {
	token, err := s.auth.AdminToken()
	if err != nil {
		return nil, err
	}
	if !s.repo.Available() {
		return nil, ErrBackendRequired
	}
	return s.repo.All(ctx, token)
}

// Quote previews the cancellation fee and refund for an order without
// touching the backend. The figures shown are estimates; Cancel replaces
// them with the backend's.
func (s *OrderService) Quote(order models.Order) (presenters.Quote, error) {
	if !presenters.CanCancel(order) {
		return presenters.Quote{}, ErrNotCancellable
	}
	return presenters.CancellationQuote(order.Total), nil
}

// Cancel asks the backend to cancel an order and applies the authoritative
// fee and refund to the returned copy.
func (s *OrderService) Cancel(ctx context.Context, order models.Order) (models.Order, error) {
	if !order.Status.Cancellable() {
		return order, ErrNotCancellable
	}
	if !s.repo.Available() {
		return order, ErrBackendRequired
	}

	result, err := s.repo.Cancel(ctx, order.ID)
	if err != nil {
		return order, err
	}

	order.Status = models.StatusCancelled
	fee, refund := result.CancellationFee, result.RefundAmount
	order.CancellationFee = &fee
	order.RefundAmount = &refund
	return order, nil
}

// UpdateStatus moves an order along the fulfilment pipeline. Admin only;
// backward moves and changes to terminal orders are rejected locally.
func (s *OrderService) UpdateStatus(ctx context.Context, order models.Order, next models.OrderStatus, update repositories.OrderUpdate) (models.Order, error) {
	if !order.Status.CanTransitionTo(next) {
		return order, ErrBadTransition
	}
	if !s.repo.Available() {
		return order, ErrBackendRequired
	}

	token, err := s.auth.AdminToken()
	if err != nil {
		return order, err
	}

	update.Status = next
	return s.repo.Update(ctx, token, order.ID, update)
}
