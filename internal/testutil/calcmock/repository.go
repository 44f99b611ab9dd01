// Package calcmock provides a function-backed calculation.Repository for
// tests: set only the hooks a test needs, the rest default to safe answers.
package calcmock

import (
	"context"

	domain "github.com/ranjithui/rental-loan-calculator/internal/domain/calculation"
)

type Repo struct {
	CreateFn             func(ctx context.Context, c *domain.Calculation) error
	GetByCalculationIDFn func(ctx context.Context, calculationID string) (*domain.Calculation, error)
	ListRecentFn         func(ctx context.Context, limit int) ([]domain.Calculation, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Calculation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByCalculationID(ctx context.Context, calculationID string) (*domain.Calculation, error) {
	if m.GetByCalculationIDFn != nil {
		return m.GetByCalculationIDFn(ctx, calculationID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListRecent(ctx context.Context, limit int) ([]domain.Calculation, error) {
	if m.ListRecentFn != nil {
		return m.ListRecentFn(ctx, limit)
	}
	return nil, nil
}
