package domain

import "github.com/shopspring/decimal"

// Store is a vendor as listed by the external stores API. DeliveryPrice is
// nil when the backend omitted it or sent something unparsable; callers
// substitute the configured fallback fee.
type Store struct {
	ID            int
	DeliveryPrice *decimal.Decimal
}
