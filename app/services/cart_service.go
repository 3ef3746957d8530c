package services

import (
	"github.com/sommystore/storefront/app/models"
	"github.com/sommystore/storefront/pkg/bus"
	"github.com/sommystore/storefront/pkg/logger"
	"github.com/sommystore/storefront/pkg/metrics"
	"github.com/sommystore/storefront/pkg/store"
)

// CartService is the cart ledger: it owns every mutation of the stored cart
// and announces each one on the cart topic so all mounted badges and pages
// re-render together.
type CartService struct {
	store *store.Store
	bus   *bus.Bus
}

func NewCartService(s *store.Store, b *bus.Bus) *CartService {
	return &CartService{store: s, bus: b}
}

// Items reads the current cart. A missing or corrupt entry yields an empty
// cart, never an error.
func (s *CartService) Items() models.Cart {
	cart := models.Cart{}
	s.store.Get(store.KeyCart, &cart)
	return cart
}

// Add puts quantity units of product into the cart. A line already holding
// this product absorbs the quantity; otherwise a new line is appended.
// Quantities below 1 are treated as 1.
func (s *CartService) Add(product models.Product, quantity int) (models.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	cart := s.Items()
	if i := cart.IndexOf(product.ID); i >= 0 {
		cart[i].Quantity += quantity
	} else {
		cart = append(cart, models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.FirstImage(),
			Quantity:  quantity,
		})
	}

	return s.save(cart, "add")
}

// SetQuantity updates the line at index (insertion-order position, not
// product ID). Quantities are clamped to a minimum of 1: lowering a line to
// zero keeps it at 1 rather than removing it — removal is always explicit.
func (s *CartService) SetQuantity(index, quantity int) (models.Cart, error) {
	cart := s.Items()
	if index < 0 || index >= len(cart) {
		return cart, ErrLineNotFound
	}

	if quantity < 1 {
		quantity = 1
	}
	cart[index].Quantity = quantity

	return s.save(cart, "set_quantity")
}

// Remove deletes the line at index.
func (s *CartService) Remove(index int) (models.Cart, error) {
	cart := s.Items()
	if index < 0 || index >= len(cart) {
		return cart, ErrLineNotFound
	}

	cart = append(cart[:index:index], cart[index+1:]...)

	return s.save(cart, "remove")
}

// Clear empties the cart (successful checkout).
func (s *CartService) Clear() error {
	_, err := s.save(models.Cart{}, "clear")
	return err
}

// save persists the whole cart then publishes it. On a failed persist the
// error is returned and nothing is published, so subscribers never observe
// state that is not durable.
func (s *CartService) save(cart models.Cart, op string) (models.Cart, error) {
	if err := s.store.Set(store.KeyCart, cart); err != nil {
		logger.Error("cart: persist failed", "op", op, "error", err)
		return cart, err
	}

	metrics.CartMutations.WithLabelValues(op).Inc()
	s.bus.Publish(bus.TopicCart, cart)
	return cart, nil
}
