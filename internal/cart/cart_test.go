package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"expomall/internal/domain"
)

func intPtr(v int) *int {
	return &v
}

func line(productID, variant, quantity int, price int64) domain.CartLine {
	return domain.CartLine{
		ProductID: productID,
		Variant:   variant,
		Quantity:  quantity,
		Price:     decimal.NewFromInt(price),
	}
}

func TestAddMergesSameProductAndVariant(t *testing.T) {
	c := NewCart(nil)

	first := line(1, 0, 1, 20000)
	first.Title = "Expo Calendar 2026"
	first.Image = "calendar-front.jpg"
	c.Add(first)

	second := line(1, 0, 2, 25000)
	second.Title = "stale title"
	second.Image = "stale.jpg"
	c.Add(second)

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line after merge, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", lines[0].Quantity)
	}
	if !lines[0].Price.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("first-added price must win, got %s", lines[0].Price)
	}
	if lines[0].Title != "Expo Calendar 2026" || lines[0].Image != "calendar-front.jpg" {
		t.Fatalf("first-added title/image must win, got %+v", lines[0])
	}
}

func TestAddDistinctVariantsStayDistinct(t *testing.T) {
	c := NewCart(nil)
	c.Add(line(1, 0, 1, 20000))
	c.Add(line(1, 1, 1, 20000))

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("different variants must not merge, got %d lines", len(lines))
	}
	if lines[0].ID == lines[1].ID {
		t.Fatalf("line ids must be unique, both %d", lines[0].ID)
	}
}

func TestAddAssignsMonotonicIDs(t *testing.T) {
	c := NewCart(nil)
	c.Add(line(1, 0, 1, 100))
	c.Add(line(2, 0, 1, 100))
	c.Add(line(3, 0, 1, 100))

	lines := c.Lines()
	if lines[0].ID != 1 || lines[1].ID != 2 || lines[2].ID != 3 {
		t.Fatalf("expected ids 1,2,3, got %d,%d,%d", lines[0].ID, lines[1].ID, lines[2].ID)
	}

	// Removing the middle line must not cause id reuse for the next add.
	c.Remove(2)
	c.Add(line(4, 0, 1, 100))
	lines = c.Lines()
	if got := lines[len(lines)-1].ID; got != 4 {
		t.Fatalf("expected next id 4 (max existing + 1), got %d", got)
	}
}

func TestSetQuantityFloorRemovesLine(t *testing.T) {
	for _, qty := range []int{0, -5} {
		c := NewCart(nil)
		c.Add(line(1, 0, 2, 100))
		id := c.Lines()[0].ID

		c.SetQuantity(id, qty)
		for _, l := range c.Lines() {
			if l.ID == id {
				t.Fatalf("SetQuantity(%d) must remove the line", qty)
			}
		}
	}
}

func TestSetQuantityReplacesInPlace(t *testing.T) {
	c := NewCart(nil)
	c.Add(line(1, 0, 2, 100))
	id := c.Lines()[0].ID

	c.SetQuantity(id, 7)
	lines := c.Lines()
	if len(lines) != 1 || lines[0].Quantity != 7 || lines[0].ID != id {
		t.Fatalf("expected same line with quantity 7, got %+v", lines)
	}
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	c := NewCart(nil)
	c.Add(line(1, 0, 1, 100))
	c.Remove(99)
	if len(c.Lines()) != 1 {
		t.Fatalf("removing an unknown id must not change the cart")
	}
}

func TestTotalsEmptyCart(t *testing.T) {
	c := NewCart(nil)
	if c.TotalItems() != 0 {
		t.Fatalf("empty cart TotalItems should be 0, got %d", c.TotalItems())
	}
	if !c.TotalPrice().IsZero() {
		t.Fatalf("empty cart TotalPrice should be 0, got %s", c.TotalPrice())
	}
	if ids := c.UniqueStoreIDs(); len(ids) != 0 {
		t.Fatalf("empty cart should have no store ids, got %v", ids)
	}
}

func TestEndToEndScenario(t *testing.T) {
	c := NewCart(nil)

	l1 := line(1, 0, 1, 20000)
	l1.StoreID = intPtr(10)
	c.Add(l1)

	l2 := line(1, 0, 2, 20000)
	l2.StoreID = intPtr(10)
	c.Add(l2)

	if len(c.Lines()) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(c.Lines()))
	}
	if c.TotalItems() != 3 {
		t.Fatalf("expected 3 items, got %d", c.TotalItems())
	}
	if !c.TotalPrice().Equal(decimal.NewFromInt(60000)) {
		t.Fatalf("expected total 60000, got %s", c.TotalPrice())
	}

	l3 := line(2, 0, 1, 15000)
	l3.StoreID = intPtr(20)
	c.Add(l3)

	ids := c.UniqueStoreIDs()
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 20 {
		t.Fatalf("expected store ids [10 20], got %v", ids)
	}

	c.Clear()
	if len(c.Lines()) != 0 || c.TotalItems() != 0 || !c.TotalPrice().IsZero() {
		t.Fatalf("cart must be empty after Clear")
	}
}

func TestUniqueStoreIDsDedup(t *testing.T) {
	c := NewCart(nil)
	for i, store := range []int{10, 10, 20, 10} {
		l := line(i+1, 0, 1, 100)
		l.StoreID = intPtr(store)
		c.Add(l)
	}
	l := line(99, 0, 1, 100) // no store id
	c.Add(l)

	ids := c.UniqueStoreIDs()
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 20 {
		t.Fatalf("expected [10 20], got %v", ids)
	}
}
