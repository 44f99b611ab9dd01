// Package amortization simulates the clearance of a property loan where
// rental income above the monthly installment is applied as extra principal
// prepayment. It is pure computation: no I/O, no logging, no shared state.
package amortization

import (
	"fmt"
	"math"
)

const (
	// rateEpsilon selects the linear-payment branch: near-zero monthly rates
	// make (1+r)^n - 1 a catastrophic denominator, so the branch must be
	// picked by threshold, not by float equality against zero.
	rateEpsilon = 1e-12

	// HorizonCeiling is the absolute cap on any simulation horizon in months.
	HorizonCeiling = 12000

	// defaultHorizonFloor keeps short tenures from getting a horizon that is
	// tighter than a conventional 30-year schedule.
	defaultHorizonFloor = 360
)

// LoanInputs are the five scalars the engine needs. Monetary values are in
// caller-chosen units; the engine never attaches a currency to them.
type LoanInputs struct {
	PropertyValue         float64
	DownPaymentPct        float64
	AnnualInterestRatePct float64
	TenureYears           int
	AnnualRentalYieldPct  float64
}

// Options parameterize a single simulation. The zero value asks for the
// default horizon with no snapshot or interest tracking.
type Options struct {
	// MaxMonths bounds the simulation. Zero means max(2*tenureMonths, 360);
	// any requested value is clamped to HorizonCeiling. Negative is invalid.
	MaxMonths int

	// TrackYearlySnapshots records the remaining balance every 12th month.
	TrackYearlySnapshots bool

	// TrackTotalInterest accumulates interest across the whole run.
	TrackTotalInterest bool
}

// Terms are the closed-form quantities derived from LoanInputs before the
// month-by-month recurrence starts.
type Terms struct {
	DownPayment  float64
	LoanAmount   float64
	MonthlyRate  float64
	TenureMonths int
	Payment      float64
}

// YearlySnapshot is the remaining balance observed after an exact multiple of
// twelve simulated months. AnnualRentalIncome is constant across snapshots
// and carried for display convenience.
type YearlySnapshot struct {
	Year               int     `json:"year"`
	RemainingBalance   float64 `json:"remaining_balance"`
	AnnualRentalIncome float64 `json:"annual_rental_income"`
}

// Result is the outcome of one cleared simulation. Monetary headline fields
// are rounded to two decimals at this boundary only; balances inside
// Snapshots stay unrounded so consecutive runs compose exactly.
type Result struct {
	LoanAmount          float64          `json:"loan_amount"`
	MonthlyPayment      float64          `json:"monthly_payment"`
	MonthlyRentalIncome float64          `json:"monthly_rental_income"`
	AnnualRentalIncome  float64          `json:"annual_rental_income"`
	YearsToClear        float64          `json:"years_to_clear"`
	TotalInterestPaid   float64          `json:"total_interest_paid,omitempty"`
	MonthsSimulated     int              `json:"months_simulated"`
	Snapshots           []YearlySnapshot `json:"yearly_snapshots,omitempty"`
}

// InvalidInputError reports a precondition violation detected before the
// simulation starts.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// HorizonExhaustedError reports that the horizon was reached with a positive
// balance left: the chosen parameters never amortize the loan. It is a
// distinct outcome, never folded into a numeric years answer.
type HorizonExhaustedError struct {
	MaxMonths          int
	OutstandingBalance float64
}

func (e *HorizonExhaustedError) Error() string {
	return fmt.Sprintf("loan not cleared within %d months (outstanding %.2f)", e.MaxMonths, e.OutstandingBalance)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Validate checks the engine preconditions and returns an InvalidInputError
// naming the first offending field.
func (in LoanInputs) Validate() error {
	switch {
	case !finite(in.PropertyValue):
		return &InvalidInputError{Field: "property_value", Reason: "must be a finite number"}
	case in.PropertyValue <= 0:
		return &InvalidInputError{Field: "property_value", Reason: "must be positive"}
	case !finite(in.DownPaymentPct):
		return &InvalidInputError{Field: "down_payment_pct", Reason: "must be a finite number"}
	case in.DownPaymentPct < 0 || in.DownPaymentPct > 100:
		return &InvalidInputError{Field: "down_payment_pct", Reason: "must be between 0 and 100"}
	case !finite(in.AnnualInterestRatePct):
		return &InvalidInputError{Field: "annual_interest_rate_pct", Reason: "must be a finite number"}
	case in.AnnualInterestRatePct < 0:
		return &InvalidInputError{Field: "annual_interest_rate_pct", Reason: "must not be negative"}
	case in.TenureYears < 1:
		return &InvalidInputError{Field: "tenure_years", Reason: "must be at least 1"}
	case !finite(in.AnnualRentalYieldPct):
		return &InvalidInputError{Field: "annual_rental_yield_pct", Reason: "must be a finite number"}
	case in.AnnualRentalYieldPct < 0:
		return &InvalidInputError{Field: "annual_rental_yield_pct", Reason: "must not be negative"}
	}
	return nil
}

// Derive computes the down-payment split and the level monthly installment
// from the standard fixed-rate amortization formula. Inputs are assumed
// valid. A fully paid-up purchase (loan amount <= 0) keeps Payment at zero.
func Derive(in LoanInputs) Terms {
	t := Terms{
		MonthlyRate:  in.AnnualInterestRatePct / 100 / 12,
		TenureMonths: in.TenureYears * 12,
	}
	t.DownPayment = in.PropertyValue * in.DownPaymentPct / 100
	t.LoanAmount = in.PropertyValue - t.DownPayment
	if t.LoanAmount <= 0 {
		return t
	}
	if t.MonthlyRate < rateEpsilon {
		t.Payment = t.LoanAmount / float64(t.TenureMonths)
		return t
	}
	growth := math.Pow(1+t.MonthlyRate, float64(t.TenureMonths))
	t.Payment = t.LoanAmount * t.MonthlyRate * growth / (growth - 1)
	return t
}

// horizon resolves the effective simulation bound for the given terms.
func horizon(opts Options, tenureMonths int) int {
	h := opts.MaxMonths
	if h == 0 {
		h = 2 * tenureMonths
		if h < defaultHorizonFloor {
			h = defaultHorizonFloor
		}
	}
	if h > HorizonCeiling {
		h = HorizonCeiling
	}
	return h
}

// Compute runs the month-by-month clearance recurrence: each month accrues
// interest, applies the installment, and prepays the full rental surplus
// (rent minus installment) whenever it is positive. It stops as soon as the
// balance reaches zero, or fails with HorizonExhaustedError when the bound
// is hit first. Deterministic for fixed inputs and safe to call from any
// number of goroutines.
func Compute(in LoanInputs, opts Options) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxMonths < 0 {
		return nil, &InvalidInputError{Field: "max_months", Reason: "must not be negative"}
	}

	terms := Derive(in)
	monthlyRent := in.AnnualRentalYieldPct / 100 * in.PropertyValue / 12
	annualRent := monthlyRent * 12

	res := &Result{
		LoanAmount:          terms.LoanAmount,
		MonthlyPayment:      round2(terms.Payment),
		MonthlyRentalIncome: round2(monthlyRent),
		AnnualRentalIncome:  annualRent,
	}
	if terms.LoanAmount <= 0 {
		// Nothing borrowed: cleared at month zero, no snapshots.
		return res, nil
	}

	maxMonths := horizon(opts, terms.TenureMonths)
	surplus := monthlyRent - terms.Payment

	outstanding := terms.LoanAmount
	month := 0
	totalInterest := 0.0
	for outstanding > 0 && month < maxMonths {
		month++
		interest := outstanding * terms.MonthlyRate
		if opts.TrackTotalInterest {
			totalInterest += interest
		}
		outstanding -= terms.Payment - interest
		if surplus > 0 {
			outstanding -= surplus
		}
		if outstanding < 0 {
			outstanding = 0
		}
		if opts.TrackYearlySnapshots && month%12 == 0 {
			res.Snapshots = append(res.Snapshots, YearlySnapshot{
				Year:               month / 12,
				RemainingBalance:   outstanding,
				AnnualRentalIncome: annualRent,
			})
		}
	}
	if outstanding > 0 {
		return nil, &HorizonExhaustedError{MaxMonths: maxMonths, OutstandingBalance: outstanding}
	}

	res.MonthsSimulated = month
	res.YearsToClear = round2(float64(month) / 12)
	if opts.TrackTotalInterest {
		res.TotalInterestPaid = round2(totalInterest)
	}
	return res, nil
}
