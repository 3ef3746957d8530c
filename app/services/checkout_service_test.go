package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/pkg/bus"
	"github.com/sommystore/storefront/pkg/store"
)

func newCheckoutFixture(t *testing.T) (*CheckoutService, *CartService) {
	t.Helper()
	t.Setenv("API_BASE_URL", "")

	st := store.New(store.NewMemory())
	b := bus.New()
	cart := NewCartService(st, b)
	session := NewSessionService(st, b)
	checkout := NewCheckoutService(cart, session, nil)
	return checkout, cart
}

func validCheckout() CheckoutInput {
	return CheckoutInput{
		Email:      "ada@example.com",
		FullName:   "Ada Lovelace",
		Address:    "1 Analytical Way",
		City:       "London",
		PostalCode: "SW1A",
		CardNumber: "4242424242424242",
		CardName:   "ADA LOVELACE",
		Expiry:     "12/27",
		CVV:        "123",
	}
}

func TestTotalsEmptyCart(t *testing.T) {
	checkout, _ := newCheckoutFixture(t)

	totals := checkout.Totals()
	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Shipping, "no shipping charge on an empty cart")
	assert.Zero(t, totals.Total)
}

func TestTotalsBreakdown(t *testing.T) {
	checkout, cart := newCheckoutFixture(t)

	_, err := cart.Add(product("a", 50), 2)
	require.NoError(t, err)

	totals := checkout.Totals()
	assert.Equal(t, 100.0, totals.Subtotal)
	assert.Equal(t, 8.0, totals.Tax)
	assert.Equal(t, 10.0, totals.Shipping)
	assert.Equal(t, 118.0, totals.Total)
}

func TestTotalsTaxRounded(t *testing.T) {
	checkout, cart := newCheckoutFixture(t)

	_, err := cart.Add(product("a", 33.33), 1)
	require.NoError(t, err)

	totals := checkout.Totals()
	assert.Equal(t, 2.67, totals.Tax)
	assert.Equal(t, 46.0, totals.Total)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	checkout, _ := newCheckoutFixture(t)

	_, err := checkout.PlaceOrder(context.Background(), validCheckout())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderValidation(t *testing.T) {
	checkout, cart := newCheckoutFixture(t)
	_, err := cart.Add(product("a", 10), 1)
	require.NoError(t, err)

	input := validCheckout()
	input.CardNumber = "1234"
	input.Expiry = "never"
	input.CVV = "12"

	_, err = checkout.PlaceOrder(context.Background(), input)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "cardNumber")
	assert.Contains(t, ve.Fields, "expiry")
	assert.Contains(t, ve.Fields, "cvv")

	assert.NotEmpty(t, cart.Items(), "a failed checkout never clears the cart")
}

func TestPlaceOrderClearsCart(t *testing.T) {
	checkout, cart := newCheckoutFixture(t)
	_, err := cart.Add(product("a", 50), 2)
	require.NoError(t, err)

	order, err := checkout.PlaceOrder(context.Background(), validCheckout())
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 118.0, order.Total)
	require.Len(t, order.Items, 1)
	assert.NotNil(t, order.OrderDate)

	assert.Empty(t, cart.Items(), "cart is cleared once the order is placed")
}

func TestPlaceOrderCarriesUserID(t *testing.T) {
	t.Setenv("API_BASE_URL", "")

	st := store.New(store.NewMemory())
	b := bus.New()
	cart := NewCartService(st, b)
	session := NewSessionService(st, b)
	checkout := NewCheckoutService(cart, session, nil)

	require.NoError(t, session.SignInUser(models.Identity{ID: "u1"}))
	_, err := cart.Add(product("a", 10), 1)
	require.NoError(t, err)

	order, err := checkout.PlaceOrder(context.Background(), validCheckout())
	require.NoError(t, err)
	assert.Equal(t, "u1", order.UserID)
}
