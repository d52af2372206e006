package cart

import (
	"github.com/shopspring/decimal"

	"expomall/internal/domain"
)

// Cart is an ordered collection of line items for one session. It is a plain
// value type; concurrency control lives in Service.
type Cart struct {
	lines []domain.CartLine
}

// NewCart builds a cart from previously persisted lines, preserving order.
func NewCart(lines []domain.CartLine) *Cart {
	c := &Cart{}
	if len(lines) > 0 {
		c.lines = append(c.lines, lines...)
	}
	return c
}

// Add merges the incoming line into the cart. Two lines are the same item
// when product id and variant match; a merge sums quantities and keeps the
// first-added price, title and image. Otherwise the line is appended with a
// freshly assigned id. The incoming line's ID field is ignored.
func (c *Cart) Add(line domain.CartLine) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == line.ProductID && c.lines[i].Variant == line.Variant {
			c.lines[i].Quantity += line.Quantity
			return
		}
	}
	line.ID = c.nextID()
	c.lines = append(c.lines, line)
}

// Remove deletes the line with the given surrogate id. Unknown ids are a
// no-op.
func (c *Cart) Remove(id int) {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces a line's quantity. Anything below 1 removes the line.
func (c *Cart) SetQuantity(id, quantity int) {
	if quantity < 1 {
		c.Remove(id)
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems sums the quantities of all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.lines {
		total += c.lines[i].Quantity
	}
	return total
}

// TotalPrice sums price*quantity over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.lines {
		qty := decimal.NewFromInt(int64(c.lines[i].Quantity))
		total = total.Add(c.lines[i].Price.Mul(qty))
	}
	return total
}

// UniqueStoreIDs returns the distinct store ids present in the cart, in
// first-seen order. Lines without a store id are skipped.
func (c *Cart) UniqueStoreIDs() []int {
	seen := make(map[int]bool)
	var ids []int
	for i := range c.lines {
		if c.lines[i].StoreID == nil {
			continue
		}
		id := *c.lines[i].StoreID
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func (c *Cart) nextID() int {
	max := 0
	for i := range c.lines {
		if c.lines[i].ID > max {
			max = c.lines[i].ID
		}
	}
	return max + 1
}
