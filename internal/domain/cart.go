package domain

import "github.com/shopspring/decimal"

// SnapshotVersion is the current schema version of persisted cart snapshots.
const SnapshotVersion = 1

// CartLine is one entry in a session's cart. ID is a surrogate key assigned
// locally (max existing id + 1); it is not a server identity. Title, Image and
// Price are snapshots taken at add time and never re-fetched.
type CartLine struct {
	ID        int             `json:"id"`
	ProductID int             `json:"productId"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Variant   int             `json:"variant"`
	OptionID  *int            `json:"optionId,omitempty"`
	StoreID   *int            `json:"storeId,omitempty"`
}

// CartSnapshot is the durable form of a cart, one slot per session.
type CartSnapshot struct {
	Version int        `json:"version"`
	Lines   []CartLine `json:"lines"`
}
