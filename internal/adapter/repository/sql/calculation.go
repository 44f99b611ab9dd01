// Package sql persists calculation history through gorm; the dialector
// (mysql or sqlite) is chosen by whoever opens the *gorm.DB.
package sql

import (
	"context"

	"gorm.io/gorm"

	calcDomain "github.com/ranjithui/rental-loan-calculator/internal/domain/calculation"
)

type CalculationRepository struct{ db *gorm.DB }

func NewCalculationRepository(db *gorm.DB) *CalculationRepository {
	return &CalculationRepository{db: db}
}

func (r *CalculationRepository) Create(ctx context.Context, c *calcDomain.Calculation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CalculationRepository) GetByCalculationID(ctx context.Context, calculationID string) (*calcDomain.Calculation, error) {
	var out calcDomain.Calculation
	res := r.db.WithContext(ctx).Where("calculation_id = ?", calculationID).First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *CalculationRepository) ListRecent(ctx context.Context, limit int) ([]calcDomain.Calculation, error) {
	var out []calcDomain.Calculation
	res := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}
