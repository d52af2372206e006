package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"expomall/internal/domain"
	snapshotrepo "expomall/internal/repository/snapshot"
)

// Apply inserts a demo cart snapshot for manual testing. It is idempotent:
// the snapshot slot is simply overwritten on re-run.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	repo := snapshotrepo.NewPostgres(pool)

	storeA := 10
	storeB := 20
	snap := domain.CartSnapshot{
		Version: domain.SnapshotVersion,
		Lines: []domain.CartLine{
			{
				ID:        1,
				ProductID: 101,
				Title:     "Экспо хуанли 2026",
				Image:     "https://cdn.example/calendar-2026.jpg",
				Price:     decimal.NewFromInt(20000),
				Quantity:  2,
				Variant:   0,
				StoreID:   &storeA,
			},
			{
				ID:        2,
				ProductID: 205,
				Title:     "Наалт - амьтдын цуглуулга",
				Image:     "https://cdn.example/sticker-animals.jpg",
				Price:     decimal.NewFromInt(8000),
				Quantity:  1,
				Variant:   1,
				StoreID:   &storeB,
			},
		},
	}

	if err := repo.Save(ctx, "demo-session", snap); err != nil {
		return fmt.Errorf("save demo snapshot: %w", err)
	}
	return nil
}
