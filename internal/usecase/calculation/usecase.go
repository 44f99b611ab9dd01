package calculation

import (
	"context"
	"log"
	"time"

	"github.com/ranjithui/rental-loan-calculator/internal/domain/amortization"
	"github.com/ranjithui/rental-loan-calculator/internal/domain/calculation"
	"github.com/ranjithui/rental-loan-calculator/pkg/id"
)

type Usecase struct{ repo calculation.Repository }

func NewUsecase(r calculation.Repository) *Usecase { return &Usecase{repo: r} }

type ComputeInput struct {
	PropertyValue         float64 `json:"property_value"`
	DownPaymentPct        float64 `json:"down_payment_pct"`
	AnnualInterestRatePct float64 `json:"annual_interest_rate_pct"`
	TenureYears           int     `json:"tenure_years"`
	AnnualRentalYieldPct  float64 `json:"annual_rental_yield_pct"`
	Currency              string  `json:"currency"`
	MaxMonths             int     `json:"max_months"`
}

type CalculationDTO struct {
	CalculationID string `json:"calculation_id"`
	Currency      string `json:"currency"`

	PropertyValue         float64 `json:"property_value"`
	DownPaymentPct        float64 `json:"down_payment_pct"`
	AnnualInterestRatePct float64 `json:"annual_interest_rate_pct"`
	TenureYears           int     `json:"tenure_years"`
	AnnualRentalYieldPct  float64 `json:"annual_rental_yield_pct"`

	LoanAmount          float64                       `json:"loan_amount"`
	MonthlyPayment      float64                       `json:"monthly_payment"`
	MonthlyRentalIncome float64                       `json:"monthly_rental_income"`
	AnnualRentalIncome  float64                       `json:"annual_rental_income"`
	YearsToClear        float64                       `json:"years_to_clear"`
	TotalInterestPaid   float64                       `json:"total_interest_paid"`
	MonthsSimulated     int                           `json:"months_simulated"`
	Snapshots           []amortization.YearlySnapshot `json:"yearly_snapshots"`

	CreatedAt time.Time `json:"created_at"`
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Compute runs the engine and stores the outcome as a history record. Engine
// errors (invalid input, horizon exhausted) pass through untouched so the
// transport layer can map them; a failed history write is logged and does not
// void a correctly computed answer.
func (u *Usecase) Compute(ctx context.Context, in ComputeInput) (*CalculationDTO, error) {
	res, err := amortization.Compute(amortization.LoanInputs{
		PropertyValue:         in.PropertyValue,
		DownPaymentPct:        in.DownPaymentPct,
		AnnualInterestRatePct: in.AnnualInterestRatePct,
		TenureYears:           in.TenureYears,
		AnnualRentalYieldPct:  in.AnnualRentalYieldPct,
	}, amortization.Options{
		MaxMonths:            in.MaxMonths,
		TrackYearlySnapshots: true,
		TrackTotalInterest:   true,
	})
	if err != nil {
		return nil, err
	}

	rec := &calculation.Calculation{
		CalculationID:         id.NewID32(),
		Currency:              in.Currency,
		PropertyValue:         in.PropertyValue,
		DownPaymentPct:        in.DownPaymentPct,
		AnnualInterestRatePct: in.AnnualInterestRatePct,
		TenureYears:           in.TenureYears,
		AnnualRentalYieldPct:  in.AnnualRentalYieldPct,
		LoanAmount:            res.LoanAmount,
		MonthlyPayment:        res.MonthlyPayment,
		MonthlyRentalIncome:   res.MonthlyRentalIncome,
		AnnualRentalIncome:    res.AnnualRentalIncome,
		YearsToClear:          res.YearsToClear,
		TotalInterestPaid:     res.TotalInterestPaid,
		MonthsSimulated:       res.MonthsSimulated,
		Snapshots:             res.Snapshots,
		CreatedAt:             time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, rec); err != nil {
		log.Printf("calculation history write failed for %s: %v", rec.CalculationID, err)
	}
	return toDTO(rec), nil
}

func (u *Usecase) Get(ctx context.Context, calculationID string) (*CalculationDTO, error) {
	rec, err := u.repo.GetByCalculationID(ctx, calculationID)
	if err != nil {
		return nil, err
	}
	return toDTO(rec), nil
}

// ListRecent returns the most recent stored calculations, newest first.
// limit <= 0 falls back to the default, anything above the cap is clamped.
func (u *Usecase) ListRecent(ctx context.Context, limit int) ([]CalculationDTO, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	recs, err := u.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]CalculationDTO, 0, len(recs))
	for i := range recs {
		out = append(out, *toDTO(&recs[i]))
	}
	return out, nil
}

func toDTO(rec *calculation.Calculation) *CalculationDTO {
	return &CalculationDTO{
		CalculationID:         rec.CalculationID,
		Currency:              rec.Currency,
		PropertyValue:         rec.PropertyValue,
		DownPaymentPct:        rec.DownPaymentPct,
		AnnualInterestRatePct: rec.AnnualInterestRatePct,
		TenureYears:           rec.TenureYears,
		AnnualRentalYieldPct:  rec.AnnualRentalYieldPct,
		LoanAmount:            rec.LoanAmount,
		MonthlyPayment:        rec.MonthlyPayment,
		MonthlyRentalIncome:   rec.MonthlyRentalIncome,
		AnnualRentalIncome:    rec.AnnualRentalIncome,
		YearsToClear:          rec.YearsToClear,
		TotalInterestPaid:     rec.TotalInterestPaid,
		MonthsSimulated:       rec.MonthsSimulated,
		Snapshots:             rec.Snapshots,
		CreatedAt:             rec.CreatedAt,
	}
}
