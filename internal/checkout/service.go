package checkout

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"expomall/internal/delivery"
	"expomall/internal/domain"
	"expomall/internal/order"
)

// Service drives the checkout flow: resolve delivery fees, build order
// drafts, submit them to the external orders API, then clear the cart and
// fan out order-placed events.
type Service struct {
	carts       cartService
	backend     backendClient
	builder     *order.Builder
	publisher   eventPublisher
	fallbackFee decimal.Decimal
	logger      *log.Logger
}

type cartService interface {
	Lines(ctx context.Context, sessionID string) []domain.CartLine
	Clear(ctx context.Context, sessionID string) error
}

type backendClient interface {
	ListStores(ctx context.Context) ([]domain.Store, error)
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.PlacedOrder, error)
}

type eventPublisher interface {
	PublishOrderPlaced(ctx context.Context, sessionID string, draft domain.OrderDraft, placed *domain.PlacedOrder) error
}

// New builds a checkout Service. publisher may be nil when no broker is
// configured.
func New(carts cartService, backend backendClient, builder *order.Builder, publisher eventPublisher, fallbackFee decimal.Decimal, logger *log.Logger) *Service {
	return &Service{
		carts:       carts,
		backend:     backend,
		builder:     builder,
		publisher:   publisher,
		fallbackFee: fallbackFee,
		logger:      logger,
	}
}

// Input is the checkout request: contact details plus an optional explicit
// item list for buy-now flows that bypass the cart.
type Input struct {
	Contact domain.Contact
	Items   []domain.CartLine
	Notes   string
}

// Result reports the created orders and the delivery total charged across
// them.
type Result struct {
	Orders        []domain.PlacedOrder `json:"orders"`
	DeliveryPrice decimal.Decimal      `json:"deliveryPrice"`
}

// Checkout validates the input, creates the order(s) upstream and, when the
// items came from the session's cart, clears it. Any order-creation failure
// leaves the cart intact for a user-initiated retry.
func (s *Service) Checkout(ctx context.Context, sessionID string, in Input) (*Result, error) {
	items := in.Items
	fromCart := len(items) == 0
	if fromCart {
		items = s.carts.Lines(ctx, sessionID)
	}

	fees := s.feesFor(ctx, storeIDsOf(items))
	drafts, err := s.builder.Build(in.Contact, items, fees, in.Notes)
	if err != nil {
		return nil, err
	}

	result := &Result{DeliveryPrice: decimal.Zero}
	for _, draft := range drafts {
		placed, err := s.backend.CreateOrder(ctx, draft)
		if err != nil {
			return nil, err
		}
		result.Orders = append(result.Orders, *placed)
		result.DeliveryPrice = result.DeliveryPrice.Add(draft.DeliveryPrice)

		if s.publisher != nil {
			if perr := s.publisher.PublishOrderPlaced(ctx, sessionID, draft, placed); perr != nil {
				s.logger.Printf("publish order event for store %d: %v", draft.StoreID, perr)
			}
		}
	}

	if fromCart {
		if err := s.carts.Clear(ctx, sessionID); err != nil {
			s.logger.Printf("clear cart for session %s: %v", sessionID, err)
		}
	}
	return result, nil
}

// DeliveryQuote returns the shipping total for the session's current cart.
func (s *Service) DeliveryQuote(ctx context.Context, sessionID string) decimal.Decimal {
	storeIDs := storeIDsOf(s.carts.Lines(ctx, sessionID))
	return delivery.Quote(storeIDs, s.feesFor(ctx, storeIDs))
}

// feesFor resolves per-store delivery fees, degrading to the fallback fee for
// every store when the stores API is unreachable.
func (s *Service) feesFor(ctx context.Context, storeIDs []int) map[int]decimal.Decimal {
	if len(storeIDs) == 0 {
		return nil
	}
	stores, err := s.backend.ListStores(ctx)
	if err != nil {
		s.logger.Printf("list stores, falling back to %s per store: %v", s.fallbackFee, err)
		stores = nil
	}
	return delivery.FeeMap(stores, storeIDs, s.fallbackFee)
}

func storeIDsOf(lines []domain.CartLine) []int {
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
