package delivery

import (
	"github.com/shopspring/decimal"

	"expomall/internal/domain"
)

// DefaultFallbackFee is charged per store when its delivery price cannot be
// resolved from the stores API.
var DefaultFallbackFee = decimal.NewFromInt(5000)

// FeeMap builds a storeID -> delivery fee lookup from the stores listing,
// restricted to the stores actually present in the cart. Stores missing from
// the listing, or listed without a usable delivery price, get the fallback.
func FeeMap(stores []domain.Store, cartStoreIDs []int, fallback decimal.Decimal) map[int]decimal.Decimal {
	listed := make(map[int]*decimal.Decimal, len(stores))
	for _, st := range stores {
		listed[st.ID] = st.DeliveryPrice
	}

	fees := make(map[int]decimal.Decimal, len(cartStoreIDs))
	for _, id := range cartStoreIDs {
		if price, ok := listed[id]; ok && price != nil {
			fees[id] = *price
			continue
		}
		fees[id] = fallback
	}
	return fees
}

// Quote sums the delivery fee once per distinct store id. Ids absent from the
// fee map contribute nothing; an empty id list quotes zero.
func Quote(storeIDs []int, fees map[int]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	seen := make(map[int]bool, len(storeIDs))
	for _, id := range storeIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if fee, ok := fees[id]; ok {
			total = total.Add(fee)
		}
	}
	return total
}
