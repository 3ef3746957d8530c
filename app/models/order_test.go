package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	// Forward moves along the pipeline.
	assert.True(t, StatusPending.CanTransitionTo(StatusDispatched))
	assert.True(t, StatusDispatched.CanTransitionTo(StatusInTransit))
	assert.True(t, StatusInTransit.CanTransitionTo(StatusDelivered))
	assert.True(t, StatusPending.CanTransitionTo(StatusDelivered), "skipping stages forward is allowed")

	// Never backward.
	assert.False(t, StatusDelivered.CanTransitionTo(StatusInTransit))
	assert.False(t, StatusInTransit.CanTransitionTo(StatusPending))
	assert.False(t, StatusDispatched.CanTransitionTo(StatusDispatched))
}

func TestCancelledOnlyWhileCancellable(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusDispatched.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusInTransit.CanTransitionTo(StatusCancelled), "past dispatch the fee window has closed")
}

func TestTerminalStatuses(t *testing.T) {
	for _, next := range []OrderStatus{StatusPending, StatusDispatched, StatusInTransit, StatusDelivered, StatusCancelled} {
		assert.False(t, StatusCancelled.CanTransitionTo(next), "cancelled -> %s", next)
	}
	assert.False(t, StatusDelivered.CanTransitionTo(StatusCancelled), "a delivered order cannot be cancelled")
}

func TestCancellable(t *testing.T) {
	assert.True(t, StatusPending.Cancellable())
	assert.True(t, StatusDispatched.Cancellable())
	assert.False(t, StatusInTransit.Cancellable())
	assert.False(t, StatusDelivered.Cancellable())
	assert.False(t, StatusCancelled.Cancellable())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusInTransit.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderReference(t *testing.T) {
	o := Order{ID: "64f1ab239cc0de1234abcdef"}
	assert.Equal(t, "34ABCDEF", o.Reference())

	short := Order{ID: "abc"}
	assert.Equal(t, "ABC", short.Reference())
}

func TestCartDerivedValues(t *testing.T) {
	cart := Cart{
		{ProductID: "a", Price: 10, Quantity: 2},
		{ProductID: "b", Price: 5, Quantity: 1},
	}

	assert.Equal(t, 25.0, cart.Total())
	assert.Equal(t, 3, cart.Count())
	assert.Equal(t, 0, cart.IndexOf("a"))
	assert.Equal(t, -1, cart.IndexOf("zzz"))
}

func TestCartDefensiveQuantities(t *testing.T) {
	line := CartLine{Price: 10, Quantity: 0}
	assert.Equal(t, 1, line.EffectiveQuantity(), "stored zero renders as one")
	assert.Equal(t, 10.0, line.Subtotal())

	negative := CartLine{Price: -5, Quantity: 2}
	assert.Zero(t, negative.Subtotal(), "negative prices contribute nothing")
}
