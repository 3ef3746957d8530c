package models

// CartLine is one product entry in the cart with its quantity. A cart holds
// at most one line per ProductID; repeat adds increment the quantity.
type CartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// EffectiveQuantity treats a missing or mangled quantity as 1 so a damaged
// stored line still renders something sensible.
func (l CartLine) EffectiveQuantity() int {
	if l.Quantity < 1 {
		return 1
	}
	return l.Quantity
}

// Subtotal is price × quantity with the same display resilience: a missing
// or negative price counts as 0.
func (l CartLine) Subtotal() float64 {
	price := l.Price
	if price < 0 {
		price = 0
	}
	return price * float64(l.EffectiveQuantity())
}

// Cart is an ordered sequence of lines; insertion order is meaningful for
// display and for the index-based mutation operations.
type Cart []CartLine

// Total is Σ(price × quantity) over all lines, recomputed on every call.
func (c Cart) Total() float64 {
	total := 0.0
	for _, line := range c {
		total += line.Subtotal()
	}
	return total
}

// Count is Σ(quantity) across lines, shown on the cart badge.
func (c Cart) Count() int {
	n := 0
	for _, line := range c {
		n += line.EffectiveQuantity()
	}
	return n
}

// IndexOf returns the position of the line for productID, or -1.
func (c Cart) IndexOf(productID string) int {
	for i, line := range c {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
