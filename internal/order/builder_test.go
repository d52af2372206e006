package order

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"expomall/internal/domain"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func intPtr(v int) *int {
	return &v
}

func cartLine(id, productID, storeID, quantity int, price int64) domain.CartLine {
	return domain.CartLine{
		ID:        id,
		ProductID: productID,
		StoreID:   intPtr(storeID),
		Quantity:  quantity,
		Price:     decimal.NewFromInt(price),
	}
}

var validContact = domain.Contact{Name: "Bat", Phone: "99112233", Address: "Ulaanbaatar, SBD"}

func TestBuildRejectsShortPhone(t *testing.T) {
	b := NewBuilder(false)
	contact := validContact
	contact.Phone = "12345"

	_, err := b.Build(contact, []domain.CartLine{cartLine(1, 1, 10, 1, 20000)}, nil, "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBuildAcceptsEightDigitPhone(t *testing.T) {
	b := NewBuilder(false)
	contact := validContact
	contact.Phone = "12345678"

	drafts, err := b.Build(contact, []domain.CartLine{cartLine(1, 1, 10, 1, 20000)}, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected a single draft, got %d", len(drafts))
	}
}

func TestBuildRejectsMissingFields(t *testing.T) {
	b := NewBuilder(false)
	items := []domain.CartLine{cartLine(1, 1, 10, 1, 20000)}

	cases := []domain.Contact{
		{Name: "", Phone: "99112233", Address: "addr"},
		{Name: "Bat", Phone: "", Address: "addr"},
		{Name: "Bat", Phone: "99112233", Address: "   "},
		{Name: "Bat", Phone: "9911223a", Address: "addr"},
	}
	for _, c := range cases {
		if _, err := b.Build(c, items, nil, ""); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("contact %+v: expected validation error, got %v", c, err)
		}
	}
}

func TestBuildRejectsEmptyCart(t *testing.T) {
	b := NewBuilder(false)
	_, err := b.Build(validContact, nil, nil, "")
	if !errors.Is(err, domain.ErrValidation) || !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty-cart validation error, got %v", err)
	}
}

func TestBuildRejectsNoResolvableStore(t *testing.T) {
	b := NewBuilder(false)
	items := []domain.CartLine{{ID: 1, ProductID: 1, Quantity: 1, Price: dec(100)}}
	if _, err := b.Build(validContact, items, nil, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error without store ids, got %v", err)
	}
}

func TestBuildSingleModeUsesFirstStoreAndAggregateDelivery(t *testing.T) {
	b := NewBuilder(false)
	items := []domain.CartLine{
		cartLine(1, 1, 10, 3, 20000),
		cartLine(2, 2, 20, 1, 15000),
	}
	fees := map[int]decimal.Decimal{10: dec(5000), 20: dec(6000)}

	drafts, err := b.Build(validContact, items, fees, "хаалганы код 1234")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("single mode must produce one draft, got %d", len(drafts))
	}
	d := drafts[0]
	if d.StoreID != 10 {
		t.Fatalf("expected first store id 10, got %d", d.StoreID)
	}
	if !d.DeliveryPrice.Equal(dec(11000)) {
		t.Fatalf("expected aggregate delivery 11000, got %s", d.DeliveryPrice)
	}
	if len(d.Items) != 2 {
		t.Fatalf("expected both items in the draft, got %d", len(d.Items))
	}
	if d.Notes != "хаалганы код 1234" {
		t.Fatalf("notes not carried: %q", d.Notes)
	}
	if d.Items[0].OptionID != nil {
		t.Fatalf("option id must stay nil when unselected")
	}
}

func TestBuildSplitModeProducesOneDraftPerStore(t *testing.T) {
	b := NewBuilder(true)
	items := []domain.CartLine{
		cartLine(1, 1, 10, 3, 20000),
		cartLine(2, 2, 20, 1, 15000),
		cartLine(3, 3, 10, 2, 5000),
	}
	fees := map[int]decimal.Decimal{10: dec(5000), 20: dec(6000)}

	drafts, err := b.Build(validContact, items, fees, "")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected one draft per store, got %d", len(drafts))
	}
	if drafts[0].StoreID != 10 || len(drafts[0].Items) != 2 {
		t.Fatalf("store 10 draft wrong: %+v", drafts[0])
	}
	if drafts[1].StoreID != 20 || len(drafts[1].Items) != 1 {
		t.Fatalf("store 20 draft wrong: %+v", drafts[1])
	}

	// Per-store fees must sum to the single-mode aggregate.
	sum := drafts[0].DeliveryPrice.Add(drafts[1].DeliveryPrice)
	if !sum.Equal(dec(11000)) {
		t.Fatalf("split fees must sum to 11000, got %s", sum)
	}
}

func TestBuildCarriesOptionIDAndSnapshotPrice(t *testing.T) {
	b := NewBuilder(false)
	l := cartLine(1, 7, 10, 2, 23000)
	l.OptionID = intPtr(4)

	drafts, err := b.Build(validContact, []domain.CartLine{l}, nil, "")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	item := drafts[0].Items[0]
	if item.OptionID == nil || *item.OptionID != 4 {
		t.Fatalf("option id not carried: %+v", item)
	}
	if !item.Price.Equal(dec(23000)) {
		t.Fatalf("item price must be the cart snapshot price, got %s", item.Price)
	}
}
