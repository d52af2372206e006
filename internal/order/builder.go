package order

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"expomall/internal/delivery"
	"expomall/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\d{8}$`)

// Builder turns validated contact details plus checkout items into
// order-creation drafts for the external orders API.
//
// In single mode the whole cart becomes one order tagged with the first
// distinct store id, with delivery summed across every store in the cart.
// That mirrors the storefront's historical behavior for multi-vendor carts.
// Split mode instead produces one draft per store, each carrying only that
// store's items and that store's fee.
type Builder struct {
	splitOrders bool
}

func NewBuilder(splitOrders bool) *Builder {
	return &Builder{splitOrders: splitOrders}
}

// Build validates the input and assembles the drafts. Validation failures
// wrap domain.ErrValidation and no draft is produced.
func (b *Builder) Build(contact domain.Contact, items []domain.CartLine, fees map[int]decimal.Decimal, notes string) ([]domain.OrderDraft, error) {
	if err := ValidateContact(contact); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrEmptyCart)
	}
	storeIDs := uniqueStoreIDs(items)
	if len(storeIDs) == 0 {
		return nil, fmt.Errorf("%w: no store resolvable from cart items", domain.ErrValidation)
	}

	if !b.splitOrders {
		draft := domain.OrderDraft{
			StoreID:         storeIDs[0],
			CustomerName:    contact.Name,
			CustomerPhone:   contact.Phone,
			CustomerAddress: contact.Address,
			Items:           toOrderItems(items),
			DeliveryPrice:   delivery.Quote(storeIDs, fees),
			Notes:           notes,
		}
		return []domain.OrderDraft{draft}, nil
	}

	drafts := make([]domain.OrderDraft, 0, len(storeIDs))
	for _, storeID := range storeIDs {
		var storeItems []domain.CartLine
		for _, it := range items {
			if it.StoreID != nil && *it.StoreID == storeID {
				storeItems = append(storeItems, it)
			}
		}
		drafts = append(drafts, domain.OrderDraft{
			StoreID:         storeID,
			CustomerName:    contact.Name,
			CustomerPhone:   contact.Phone,
			CustomerAddress: contact.Address,
			Items:           toOrderItems(storeItems),
			DeliveryPrice:   delivery.Quote([]int{storeID}, fees),
			Notes:           notes,
		})
	}
	return drafts, nil
}

// ValidateContact checks the checkout form: all fields non-empty and the
// phone exactly 8 digits.
func ValidateContact(c domain.Contact) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	if strings.TrimSpace(c.Address) == "" {
		return fmt.Errorf("%w: address required", domain.ErrValidation)
	}
	phone := strings.TrimSpace(c.Phone)
	if phone == "" {
		return fmt.Errorf("%w: phone required", domain.ErrValidation)
	}
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("%w: phone must be exactly 8 digits", domain.ErrValidation)
	}
	return nil
}

func toOrderItems(lines []domain.CartLine) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID,
			OptionID:  l.OptionID,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}
	return items
}

func uniqueStoreIDs(lines []domain.CartLine) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, l := range lines {
		if l.StoreID == nil {
			continue
		}
		if !seen[*l.StoreID] {
			seen[*l.StoreID] = true
			ids = append(ids, *l.StoreID)
		}
	}
	return ids
}
