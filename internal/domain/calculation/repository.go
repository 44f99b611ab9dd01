package calculation

import "context"

type Repository interface {
	Create(ctx context.Context, c *Calculation) error
	GetByCalculationID(ctx context.Context, calculationID string) (*Calculation, error)
	ListRecent(ctx context.Context, limit int) ([]Calculation, error)
}
