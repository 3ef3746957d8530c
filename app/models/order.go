package models

import (
	"strings"
	"time"
)

// OrderStatus is the backend-driven order lifecycle state.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusDispatched OrderStatus = "dispatched"
	StatusInTransit  OrderStatus = "in_transit"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// statusRank orders the forward-only progression. Cancelled sits outside it.
var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusDispatched: 1,
	StatusInTransit:  2,
	StatusDelivered:  3,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// Cancellable reports whether a client cancel request may still be offered.
func (s OrderStatus) Cancellable() bool {
	return s == StatusPending || s == StatusDispatched
}

// CanTransitionTo enforces the lifecycle: forward-only through
// pending → dispatched → in_transit → delivered, with the single side
// transition {pending, dispatched} → cancelled. Cancelled and delivered are
// terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() || s == next {
		return false
	}
	if s == StatusCancelled {
		return false
	}
	if next == StatusCancelled {
		return s.Cancellable()
	}
	return statusRank[next] > statusRank[s]
}

// Order is a read-only client projection of a backend order record.
type Order struct {
	ID              string      `json:"_id"`
	UserID          string      `json:"userId,omitempty"`
	Items           []CartLine  `json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	OrderDate       *time.Time  `json:"orderDate,omitempty"`
	DispatchDate    *time.Time  `json:"dispatchDate,omitempty"`
	DepartureDate   *time.Time  `json:"departureDate,omitempty"`
	DeliveryDate    *time.Time  `json:"deliveryDate,omitempty"`
	CancellationFee *float64    `json:"cancellationFee,omitempty"`
	RefundAmount    *float64    `json:"refundAmount,omitempty"`
}

// Reference is the short display handle, the last 8 characters of the
// backend ID, uppercased.
func (o Order) Reference() string {
	id := o.ID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}
