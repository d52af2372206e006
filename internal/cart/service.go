package cart

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"expomall/internal/domain"
)

// Service owns one cart per session. A cart is loaded from its durable
// snapshot the first time the session is touched and written back after
// every mutation. Persistence failures are logged and otherwise ignored;
// the in-memory cart stays authoritative for the session.
type Service struct {
	repo   snapshotRepo
	logger *log.Logger

	mu    sync.RWMutex
	carts map[string]*Cart
}

type snapshotRepo interface {
	Load(ctx context.Context, sessionID string) (*domain.CartSnapshot, error)
	Save(ctx context.Context, sessionID string, snap domain.CartSnapshot) error
	Delete(ctx context.Context, sessionID string) error
}

func New(repo snapshotRepo, logger *log.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		carts:  make(map[string]*Cart),
	}
}

// Add merges a line into the session's cart and persists the snapshot.
func (s *Service) Add(ctx context.Context, sessionID string, line domain.CartLine) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(ctx, sessionID)
	c.Add(line)
	s.persistLocked(ctx, sessionID, c)
	return c.Lines(), nil
}

// Remove deletes a line by id and persists the snapshot.
func (s *Service) Remove(ctx context.Context, sessionID string, id int) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(ctx, sessionID)
	c.Remove(id)
	s.persistLocked(ctx, sessionID, c)
	return c.Lines(), nil
}

// SetQuantity updates a line's quantity (below 1 removes it) and persists.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, id, quantity int) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(ctx, sessionID)
	c.SetQuantity(id, quantity)
	s.persistLocked(ctx, sessionID, c)
	return c.Lines(), nil
}

// Clear empties the session's cart and deletes its durable slot.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(ctx, sessionID)
	c.Clear()
	if err := s.repo.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.Printf("delete cart snapshot for session %s: %v", sessionID, err)
	}
	return nil
}

// Lines returns the session's cart contents.
func (s *Service) Lines(ctx context.Context, sessionID string) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLocked(ctx, sessionID).Lines()
}

// TotalItems returns the summed quantity across the session's cart.
func (s *Service) TotalItems(ctx context.Context, sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLocked(ctx, sessionID).TotalItems()
}

// TotalPrice returns the summed price*quantity across the session's cart.
func (s *Service) TotalPrice(ctx context.Context, sessionID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLocked(ctx, sessionID).TotalPrice()
}

// UniqueStoreIDs returns the distinct vendor ids in the session's cart.
func (s *Service) UniqueStoreIDs(ctx context.Context, sessionID string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLocked(ctx, sessionID).UniqueStoreIDs()
}

// cartLocked returns the session's cart, loading it from the snapshot repo
// on first touch. Callers must hold s.mu.
func (s *Service) cartLocked(ctx context.Context, sessionID string) *Cart {
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	var lines []domain.CartLine
	snap, err := s.repo.Load(ctx, sessionID)
	switch {
	case err == nil:
		if snap.Version == domain.SnapshotVersion {
			lines = snap.Lines
		} else {
			s.logger.Printf("discarding cart snapshot for session %s: unknown schema version %d", sessionID, snap.Version)
		}
	case errors.Is(err, domain.ErrNotFound):
	default:
		s.logger.Printf("load cart snapshot for session %s: %v", sessionID, err)
	}
	c := NewCart(lines)
	s.carts[sessionID] = c
	return c
}

func (s *Service) persistLocked(ctx context.Context, sessionID string, c *Cart) {
	snap := domain.CartSnapshot{Version: domain.SnapshotVersion, Lines: c.Lines()}
	if err := s.repo.Save(ctx, sessionID, snap); err != nil {
		s.logger.Printf("save cart snapshot for session %s: %v", sessionID, err)
	}
}
