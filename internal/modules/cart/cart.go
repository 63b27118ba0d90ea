package cart

import (
	"github.com/novalabs/novapos-backend/internal/modules/catalog"
)

// Line is one product-quantity pairing in a cart.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart aggregates the products selected during one checkout session. Lines
// are keyed by product id and kept in insertion order; quantities are always
// at least 1 and a line whose quantity drops to zero is removed. The cart is
// ephemeral: it lives only for the session and is destroyed on successful
// checkout or an explicit clear.
//
// A cart is mutated only by its own session and carries no locking; the
// session registry serialises access.
type Cart struct {
	lines []*Line
	index map[string]int // product id -> position in lines
}

func New() *Cart {
	return &Cart{index: map[string]int{}}
}

// Add increments the quantity of the matching line by delta, creating the
// line when absent. A delta that would leave the quantity at zero or below
// removes the line; a negative delta for an absent product is a no-op.
func (c *Cart) Add(p catalog.Product, delta int) {
	id := p.ID.String()
	if pos, ok := c.index[id]; ok {
		c.lines[pos].Quantity += delta
		if c.lines[pos].Quantity <= 0 {
			c.removeAt(pos)
		}
		return
	}
	if delta <= 0 {
		return
	}
	c.index[id] = len(c.lines)
	c.lines = append(c.lines, &Line{Product: p, Quantity: delta})
}

// SetQuantity replaces the quantity of the matching line; qty <= 0 removes it.
func (c *Cart) SetQuantity(productID string, qty int) {
	pos, ok := c.index[productID]
	if !ok {
		return
	}
	if qty <= 0 {
		c.removeAt(pos)
		return
	}
	c.lines[pos].Quantity = qty
}

// Remove deletes the line unconditionally.
func (c *Cart) Remove(productID string) {
	if pos, ok := c.index[productID]; ok {
		c.removeAt(pos)
	}
}

// Quantity reports the current quantity for a product, zero when absent.
func (c *Cart) Quantity(productID string) int {
	if pos, ok := c.index[productID]; ok {
		return c.lines[pos].Quantity
	}
	return 0
}

// Total recomputes the cart subtotal from scratch on every call; the cart is
// small enough that caching would only invite staleness.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Product.Price * float64(l.Quantity)
	}
	return total
}

// Lines returns the cart content in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = *l
	}
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int { return len(c.lines) }

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = map[string]int{}
}

func (c *Cart) removeAt(pos int) {
	id := c.lines[pos].Product.ID.String()
	c.lines = append(c.lines[:pos], c.lines[pos+1:]...)
	delete(c.index, id)
	for i := pos; i < len(c.lines); i++ {
		c.index[c.lines[i].Product.ID.String()] = i
	}
}
