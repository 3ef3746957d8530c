package repositories

import (
	"context"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/pkg/http"
)

// OrderRepository wraps the backend's order endpoints.
type OrderRepository struct {
	base string
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{base: baseURL()}
}

// Available reports whether a backend is configured.
func (r *OrderRepository) Available() bool {
	return r.base != ""
}

type ordersResponse struct {
	Orders []models.Order `json:"orders"`
}

// OrderDraft is the payload for placing a new order at checkout.
type OrderDraft struct {
	UserID          string            `json:"userId,omitempty"`
	Items           []models.CartLine `json:"items"`
	Total           float64           `json:"total"`
	ShippingAddress map[string]string `json:"shippingAddress,omitempty"`
}

// Place submits a new order.
func (r *OrderRepository) Place(ctx context.Context, draft OrderDraft) (models.Order, error) {
	var order models.Order

	resp, err := http.Post(r.base+"/api/orders").
		WithContext(ctx).
		Body(draft).
		Send()
	if err != nil {
		return order, err
	}
	if !resp.OK() {
		return order, apiError(resp, "Failed to place order")
	}

	err = resp.JSON(&order)
	return order, err
}

// ForUser fetches the orders placed by one shopper.
func (r *OrderRepository) ForUser(ctx context.Context, userID string) ([]models.Order, error) {
	resp, err := http.Get(r.base + "/api/orders/user/" + userID).WithContext(ctx).Send()
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError(resp, "Failed to fetch orders")
	}

	var body ordersResponse
	if err := resp.JSON(&body); err != nil {
		return nil, err
	}
	return body.Orders, nil
}

// All fetches every order. Admin only.
func (r *OrderRepository) All(ctx context.Context, token string) ([]models.Order, error) {
	resp, err := http.Get(r.base + "/api/orders/admin/all").
		WithContext(ctx).
		Bearer(token).
		Send()
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError(resp, "Failed to fetch orders")
	}

	var body ordersResponse
	if err := resp.JSON(&body); err != nil {
		return nil, err
	}
	return body.Orders, nil
}

// OrderUpdate carries the status/date fields an admin may set.
type OrderUpdate struct {
	Status        models.OrderStatus `json:"status,omitempty"`
	DispatchDate  string             `json:"dispatchDate,omitempty"`
	DepartureDate string             `json:"departureDate,omitempty"`
	DeliveryDate  string             `json:"deliveryDate,omitempty"`
}

// Update pushes status/date changes for an order. Admin only.
func (r *OrderRepository) Update(ctx context.Context, token, orderID string, update OrderUpdate) (models.Order, error) {
	var order models.Order

	resp, err := http.Put(r.base+"/api/orders/"+orderID).
		WithContext(ctx).
		Bearer(token).
		Body(update).
		Send()
	if err != nil {
		return order, err
	}
	if !resp.OK() {
		return order, apiError(resp, "Failed to update order")
	}

	err = resp.JSON(&order)
	return order, err
}

// CancelResult is the backend's authoritative fee and refund for a
// confirmed cancellation.
type CancelResult struct {
	CancellationFee float64 `json:"cancellationFee"`
	RefundAmount    float64 `json:"refundAmount"`
}

// Cancel requests cancellation of an order. The returned fee and refund are
// authoritative and overwrite any client-side preview.
func (r *OrderRepository) Cancel(ctx context.Context, orderID string) (CancelResult, error) {
	var result CancelResult

	resp, err := http.Post(r.base + "/api/orders/" + orderID + "/cancel").
		WithContext(ctx).
		Send()
	if err != nil {
		return result, err
	}
	if !resp.OK() {
		return result, apiError(resp, "Failed to cancel")
	}

	err = resp.JSON(&result)
	return result, err
}
