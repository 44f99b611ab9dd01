package calculation

import (
	"time"

	"gorm.io/gorm"

	"github.com/ranjithui/rental-loan-calculator/internal/domain/amortization"
)

// Calculation is one stored run of the clearance engine: the five inputs, the
// display currency requested by the caller, and the headline outputs. The
// yearly snapshots ride along as a JSON column.
type Calculation struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	CalculationID string `gorm:"size:32;uniqueIndex:ux_calculations_calculation_id" json:"calculation_id"`
	Currency      string `gorm:"size:8" json:"currency"`

	PropertyValue         float64 `gorm:"type:decimal(18,2)" json:"property_value"`
	DownPaymentPct        float64 `gorm:"type:decimal(6,3)" json:"down_payment_pct"`
	AnnualInterestRatePct float64 `gorm:"type:decimal(6,3)" json:"annual_interest_rate_pct"`
	TenureYears           int     `json:"tenure_years"`
	AnnualRentalYieldPct  float64 `gorm:"type:decimal(6,3)" json:"annual_rental_yield_pct"`

	LoanAmount          float64 `gorm:"type:decimal(18,2)" json:"loan_amount"`
	MonthlyPayment      float64 `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	MonthlyRentalIncome float64 `gorm:"type:decimal(18,2)" json:"monthly_rental_income"`
	AnnualRentalIncome  float64 `gorm:"type:decimal(18,2)" json:"annual_rental_income"`
	YearsToClear        float64 `gorm:"type:decimal(8,2)" json:"years_to_clear"`
	TotalInterestPaid   float64 `gorm:"type:decimal(18,2)" json:"total_interest_paid"`
	MonthsSimulated     int     `json:"months_simulated"`

	Snapshots []amortization.YearlySnapshot `gorm:"serializer:json" json:"yearly_snapshots"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Calculation) TableName() string { return "calculations" }
