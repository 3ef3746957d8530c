package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/pkg/bus"
	"github.com/sommystore/storefront/pkg/store"
)

func newCartFixture(t *testing.T) (*CartService, *store.Store, *bus.Bus) {
	t.Helper()
	st := store.New(store.NewMemory())
	b := bus.New()
	return NewCartService(st, b), st, b
}

func product(id string, price float64) models.Product {
	return models.Product{ID: id, Name: "product " + id, Price: price, Images: []string{"/img/" + id + ".jpg"}}
}

func TestEmptyCartByDefault(t *testing.T) {
	cart, _, _ := newCartFixture(t)

	items := cart.Items()
	assert.Empty(t, items)
	assert.Zero(t, items.Total())
	assert.Zero(t, items.Count())
}

func TestAddAppendsNewLine(t *testing.T) {
	cart, _, _ := newCartFixture(t)

	got, err := cart.Add(product("a", 10), 2)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ProductID)
	assert.Equal(t, 2, got[0].Quantity)
	assert.Equal(t, "/img/a.jpg", got[0].Image)
}

func TestAddMergesByProductID(t *testing.T) {
	cart, _, _ := newCartFixture(t)

	_, err := cart.Add(product("a", 10), 2)
	require.NoError(t, err)
	got, err := cart.Add(product("a", 10), 3)
	require.NoError(t, err)

	require.Len(t, got, 1, "same product never produces a second line")
	assert.Equal(t, 5, got[0].Quantity)
	assert.Equal(t, 50.0, got[0].Subtotal())
}

func TestAddClampsQuantityToOne(t *testing.T) {
	cart, _, _ := newCartFixture(t)

	got, err := cart.Add(product("a", 10), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got[0].Quantity)

	got, err = cart.Add(product("b", 5), -3)
	require.NoError(t, err)
	assert.Equal(t, 1, got[1].Quantity)
}

func TestTotalAndCountRecomputed(t *testing.T) {
	cart, _, _ := newCartFixture(t)

	_, err := cart.Add(product("a", 10), 2)
	require.NoError(t, err)
	got, err := cart.Add(product("b", 5), 1)
	require.NoError(t, err)

	assert.Equal(t, 25.0, got.Total())
	assert.Equal(t, 3, got.Count())
}

func TestSetQuantityClampsToOne(t *testing.T) {
	cart, _, _ := newCartFixture(t)

	_, err := cart.Add(product("a", 10), 4)
	require.NoError(t, err)

	got, err := cart.SetQuantity(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got[0].Quantity, "lowering to zero keeps the line at 1")
}

func TestSetQuantityOutOfRange(t *testing.T) {
	cart, _, _ := newCartFixture(t)

	_, err := cart.Add(product("a", 10), 1)
	require.NoError(t, err)

	_, err = cart.SetQuantity(5, 2)
	assert.ErrorIs(t, err, ErrLineNotFound)
	_, err = cart.SetQuantity(-1, 2)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestRemoveByPosition(t *testing.T) {
	cart, _, _ := newCartFixture(t)

	_, err := cart.Add(product("a", 10), 2)
	require.NoError(t, err)
	_, err = cart.Add(product("b", 5), 1)
	require.NoError(t, err)

	got, err := cart.Remove(0)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ProductID)
	assert.Equal(t, 5.0, got.Total())
}

func TestClear(t *testing.T) {
	cart, st, _ := newCartFixture(t)

	_, err := cart.Add(product("a", 10), 2)
	require.NoError(t, err)
	require.NoError(t, cart.Clear())

	assert.Empty(t, cart.Items())

	stored := models.Cart{models.CartLine{ProductID: "sentinel"}}
	assert.True(t, st.Get(store.KeyCart, &stored), "clear stores an empty cart rather than removing the key")
	assert.Empty(t, stored)
}

func TestMutationsPublishAfterPersist(t *testing.T) {
	cart, st, b := newCartFixture(t)

	var seen []models.Cart
	b.Subscribe(bus.TopicCart, func(payload interface{}) {
		got, ok := payload.(models.Cart)
		require.True(t, ok)

		// State must already be durable when the notification arrives.
		stored := models.Cart{}
		st.Get(store.KeyCart, &stored)
		assert.Equal(t, got.Total(), stored.Total())

		seen = append(seen, got)
	})

	_, err := cart.Add(product("a", 10), 2)
	require.NoError(t, err)
	_, err = cart.SetQuantity(0, 5)
	require.NoError(t, err)
	_, err = cart.Remove(0)
	require.NoError(t, err)
	require.NoError(t, cart.Clear())

	require.Len(t, seen, 4)
	assert.Equal(t, 20.0, seen[0].Total())
	assert.Equal(t, 50.0, seen[1].Total())
	assert.Empty(t, seen[2])
	assert.Empty(t, seen[3])
}

func TestCorruptStoredCartFallsBackToEmpty(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Set(store.KeyCart, []byte("{broken")))
	cart := NewCartService(store.New(mem), bus.New())

	assert.Empty(t, cart.Items())

	got, err := cart.Add(product("a", 10), 1)
	require.NoError(t, err)
	assert.Len(t, got, 1, "mutations start from the empty default")
}
