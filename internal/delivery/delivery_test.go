package delivery

import (
	"testing"

	"github.com/shopspring/decimal"

	"expomall/internal/domain"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestQuoteSumsPerDistinctStore(t *testing.T) {
	fees := map[int]decimal.Decimal{10: dec(5000), 20: dec(7000)}

	if got := Quote([]int{10, 20}, fees); !got.Equal(dec(12000)) {
		t.Fatalf("expected 12000, got %s", got)
	}
	// A second appearance of a store must not be charged twice.
	if got := Quote([]int{10, 20, 10}, fees); !got.Equal(dec(12000)) {
		t.Fatalf("duplicate store id changed the quote: %s", got)
	}
	if got := Quote([]int{10}, fees); !got.Equal(dec(5000)) {
		t.Fatalf("expected single-store quote 5000, got %s", got)
	}
}

func TestQuoteEmptyCart(t *testing.T) {
	if got := Quote(nil, map[int]decimal.Decimal{10: dec(5000)}); !got.IsZero() {
		t.Fatalf("empty cart must quote 0, got %s", got)
	}
}

func TestQuoteMissingStoreContributesNothing(t *testing.T) {
	fees := map[int]decimal.Decimal{10: dec(5000)}
	if got := Quote([]int{10, 30}, fees); !got.Equal(dec(5000)) {
		t.Fatalf("unmapped store must contribute 0, got %s", got)
	}
}

func TestFeeMapUsesListedPrices(t *testing.T) {
	stores := []domain.Store{
		{ID: 10, DeliveryPrice: decPtr(6000)},
		{ID: 20, DeliveryPrice: decPtr(7000)},
		{ID: 30, DeliveryPrice: decPtr(9000)},
	}
	fees := FeeMap(stores, []int{10, 20}, DefaultFallbackFee)

	if len(fees) != 2 {
		t.Fatalf("fee map must cover only cart stores, got %v", fees)
	}
	if !fees[10].Equal(dec(6000)) || !fees[20].Equal(dec(7000)) {
		t.Fatalf("unexpected fees %v", fees)
	}
}

func TestFeeMapFallsBack(t *testing.T) {
	stores := []domain.Store{
		{ID: 10, DeliveryPrice: decPtr(6000)},
		{ID: 20}, // listed without a usable price
	}
	fees := FeeMap(stores, []int{10, 20, 40}, DefaultFallbackFee)

	if !fees[20].Equal(dec(5000)) {
		t.Fatalf("store without price must get the fallback, got %s", fees[20])
	}
	if !fees[40].Equal(dec(5000)) {
		t.Fatalf("unlisted store must get the fallback, got %s", fees[40])
	}
}

func TestQuoteAfterFeeMapEndToEnd(t *testing.T) {
	stores := []domain.Store{
		{ID: 10, DeliveryPrice: decPtr(5000)},
		{ID: 20, DeliveryPrice: decPtr(6000)},
	}
	ids := []int{10, 20}
	if got := Quote(ids, FeeMap(stores, ids, DefaultFallbackFee)); !got.Equal(dec(11000)) {
		t.Fatalf("expected 11000, got %s", got)
	}
}
