package amortization

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func validInputs() LoanInputs {
	return LoanInputs{
		PropertyValue:         5_000_000,
		DownPaymentPct:        25,
		AnnualInterestRatePct: 4.0,
		TenureYears:           25,
		AnnualRentalYieldPct:  6.0,
	}
}

func within(got, want, tol float64) bool { return math.Abs(got-want) <= tol }

// ----- validation -----

func TestValidate_RejectsBadInputs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*LoanInputs)
		field  string
	}{
		{"zero property value", func(in *LoanInputs) { in.PropertyValue = 0 }, "property_value"},
		{"negative property value", func(in *LoanInputs) { in.PropertyValue = -1 }, "property_value"},
		{"NaN property value", func(in *LoanInputs) { in.PropertyValue = math.NaN() }, "property_value"},
		{"down payment above 100", func(in *LoanInputs) { in.DownPaymentPct = 100.5 }, "down_payment_pct"},
		{"negative down payment", func(in *LoanInputs) { in.DownPaymentPct = -3 }, "down_payment_pct"},
		{"negative rate", func(in *LoanInputs) { in.AnnualInterestRatePct = -0.1 }, "annual_interest_rate_pct"},
		{"infinite rate", func(in *LoanInputs) { in.AnnualInterestRatePct = math.Inf(1) }, "annual_interest_rate_pct"},
		{"zero tenure", func(in *LoanInputs) { in.TenureYears = 0 }, "tenure_years"},
		{"negative yield", func(in *LoanInputs) { in.AnnualRentalYieldPct = -1 }, "annual_rental_yield_pct"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInputs()
			tc.mutate(&in)
			_, err := Compute(in, Options{})
			var inv *InvalidInputError
			if !errors.As(err, &inv) {
				t.Fatalf("want InvalidInputError, got %v", err)
			}
			if inv.Field != tc.field {
				t.Fatalf("field = %q, want %q", inv.Field, tc.field)
			}
		})
	}
}

func TestCompute_NegativeMaxMonths(t *testing.T) {
	_, err := Compute(validInputs(), Options{MaxMonths: -1})
	var inv *InvalidInputError
	if !errors.As(err, &inv) || inv.Field != "max_months" {
		t.Fatalf("want max_months InvalidInputError, got %v", err)
	}
}

// ----- derivation -----

func TestDerive_ZeroRateIsLinear(t *testing.T) {
	in := LoanInputs{PropertyValue: 5_000_000, DownPaymentPct: 20, TenureYears: 10}
	terms := Derive(in)
	if terms.LoanAmount != 4_000_000 {
		t.Fatalf("loan amount = %v", terms.LoanAmount)
	}
	// No compounding: payment is exactly loanAmount / tenureMonths.
	if want := 4_000_000.0 / 120; terms.Payment != want {
		t.Fatalf("payment = %v, want %v", terms.Payment, want)
	}
}

func TestDerive_StandardFormula(t *testing.T) {
	terms := Derive(validInputs())
	if terms.DownPayment != 1_250_000 || terms.LoanAmount != 3_750_000 {
		t.Fatalf("split: down=%v loan=%v", terms.DownPayment, terms.LoanAmount)
	}
	if terms.TenureMonths != 300 {
		t.Fatalf("tenure months = %d", terms.TenureMonths)
	}
	if !within(terms.Payment, 19793.88, 0.01) {
		t.Fatalf("payment = %v, want ~19793.88", terms.Payment)
	}
}

func TestDerive_FullDownPayment(t *testing.T) {
	in := validInputs()
	in.DownPaymentPct = 100
	terms := Derive(in)
	if terms.LoanAmount != 0 || terms.Payment != 0 {
		t.Fatalf("loan=%v payment=%v, want zeros", terms.LoanAmount, terms.Payment)
	}
}

// ----- recurrence -----

func TestCompute_PinnedScenario(t *testing.T) {
	// 5,000,000 at 25% down, 4.0% for 25y, 6.0% rental yield. The 25,000
	// monthly rent leaves a ~5,206 surplus that prepays the loan down to
	// clearance at month 209.
	res, err := Compute(validInputs(), Options{TrackYearlySnapshots: true, TrackTotalInterest: true})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.LoanAmount != 3_750_000 {
		t.Fatalf("loan amount = %v", res.LoanAmount)
	}
	if res.MonthlyPayment != 19793.88 {
		t.Fatalf("monthly payment = %v, want 19793.88", res.MonthlyPayment)
	}
	if res.MonthlyRentalIncome != 25000 {
		t.Fatalf("monthly rent = %v", res.MonthlyRentalIncome)
	}
	if res.AnnualRentalIncome != 300000 {
		t.Fatalf("annual rent = %v", res.AnnualRentalIncome)
	}
	if res.MonthsSimulated != 209 {
		t.Fatalf("months = %d, want 209", res.MonthsSimulated)
	}
	if res.YearsToClear != 17.42 {
		t.Fatalf("years = %v, want 17.42", res.YearsToClear)
	}
	if !within(res.TotalInterestPaid, 1_457_271.96, 1.0) {
		t.Fatalf("total interest = %v, want ~1,457,272", res.TotalInterestPaid)
	}
	// Snapshots on exact year boundaries only: months 12..204 inclusive.
	if len(res.Snapshots) != 17 {
		t.Fatalf("snapshots = %d, want 17", len(res.Snapshots))
	}
	last := res.Snapshots[len(res.Snapshots)-1]
	if last.Year != 17 || last.RemainingBalance <= 0 {
		t.Fatalf("last snapshot = %+v", last)
	}
}

func TestCompute_ZeroYieldMatchesTenure(t *testing.T) {
	in := validInputs()
	in.AnnualRentalYieldPct = 0
	res, err := Compute(in, Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	// Floating-point drift may leave a residual for one extra month, so the
	// clearance must land within 0.1 years of the nominal tenure.
	if !within(res.YearsToClear, 25, 0.1) {
		t.Fatalf("years = %v, want ~25", res.YearsToClear)
	}
}

func TestCompute_LowYieldBehavesLikePlainAmortization(t *testing.T) {
	in := validInputs()
	in.AnnualRentalYieldPct = 2.0 // rent 8,333 < payment, surplus never positive
	res, err := Compute(in, Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !within(res.YearsToClear, float64(in.TenureYears), 0.1) {
		t.Fatalf("years = %v, want ~%d", res.YearsToClear, in.TenureYears)
	}
}

func TestCompute_BalancesNeverRise(t *testing.T) {
	res, err := Compute(validInputs(), Options{TrackYearlySnapshots: true})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	prev := res.LoanAmount
	for _, s := range res.Snapshots {
		if s.RemainingBalance > prev {
			t.Fatalf("balance rose at year %d: %v > %v", s.Year, s.RemainingBalance, prev)
		}
		prev = s.RemainingBalance
	}
}

func TestCompute_Idempotent(t *testing.T) {
	opts := Options{TrackYearlySnapshots: true, TrackTotalInterest: true}
	a, err := Compute(validInputs(), opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := Compute(validInputs(), opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ:\n%+v\n%+v", a, b)
	}
}

func TestCompute_FullDownPaymentClearsAtMonthZero(t *testing.T) {
	in := validInputs()
	in.DownPaymentPct = 100
	res, err := Compute(in, Options{TrackYearlySnapshots: true, TrackTotalInterest: true})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.LoanAmount != 0 || res.MonthlyPayment != 0 {
		t.Fatalf("loan=%v payment=%v", res.LoanAmount, res.MonthlyPayment)
	}
	if res.YearsToClear != 0 || res.MonthsSimulated != 0 {
		t.Fatalf("years=%v months=%d", res.YearsToClear, res.MonthsSimulated)
	}
	if len(res.Snapshots) != 0 {
		t.Fatalf("snapshots = %d, want none", len(res.Snapshots))
	}
}

func TestCompute_ZeroRate(t *testing.T) {
	in := LoanInputs{PropertyValue: 5_000_000, DownPaymentPct: 20, TenureYears: 10}
	res, err := Compute(in, Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.MonthlyPayment != 33333.33 {
		t.Fatalf("payment = %v", res.MonthlyPayment)
	}
	if res.MonthsSimulated != 120 || res.YearsToClear != 10 {
		t.Fatalf("months=%d years=%v", res.MonthsSimulated, res.YearsToClear)
	}
}

func TestCompute_HorizonExhausted(t *testing.T) {
	// A 100-year tenure makes the installment barely cover interest; 120
	// months is nowhere near enough to clear the balance.
	in := LoanInputs{
		PropertyValue:         5_000_000,
		DownPaymentPct:        10,
		AnnualInterestRatePct: 6.0,
		TenureYears:           100,
	}
	res, err := Compute(in, Options{MaxMonths: 120})
	if res != nil {
		t.Fatalf("expected nil result, got %+v", res)
	}
	var hz *HorizonExhaustedError
	if !errors.As(err, &hz) {
		t.Fatalf("want HorizonExhaustedError, got %v", err)
	}
	if hz.MaxMonths != 120 {
		t.Fatalf("MaxMonths = %d", hz.MaxMonths)
	}
	if hz.OutstandingBalance <= 0 {
		t.Fatalf("OutstandingBalance = %v", hz.OutstandingBalance)
	}
}

func TestCompute_HorizonDefaultsAndCeiling(t *testing.T) {
	if got := horizon(Options{}, 300); got != 600 {
		t.Fatalf("default horizon = %d, want 600", got)
	}
	if got := horizon(Options{}, 60); got != 360 {
		t.Fatalf("short-tenure horizon = %d, want floor 360", got)
	}
	if got := horizon(Options{MaxMonths: 99999}, 300); got != HorizonCeiling {
		t.Fatalf("ceiling horizon = %d, want %d", got, HorizonCeiling)
	}
	if got := horizon(Options{MaxMonths: 480}, 300); got != 480 {
		t.Fatalf("explicit horizon = %d, want 480", got)
	}
}

func TestCompute_SnapshotOnlyOnYearBoundary(t *testing.T) {
	// Clears at month 209, which is not a multiple of 12: no partial-year
	// snapshot is emitted for the clearance month.
	res, err := Compute(validInputs(), Options{TrackYearlySnapshots: true})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for _, s := range res.Snapshots {
		if s.Year*12 > res.MonthsSimulated {
			t.Fatalf("snapshot beyond clearance: %+v", s)
		}
	}
	if res.MonthsSimulated%12 == 0 {
		t.Fatalf("scenario must clear off a year boundary, cleared at %d", res.MonthsSimulated)
	}
}

func TestCompute_UntrackedFieldsStayZero(t *testing.T) {
	res, err := Compute(validInputs(), Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.TotalInterestPaid != 0 {
		t.Fatalf("total interest tracked without opt-in: %v", res.TotalInterestPaid)
	}
	if res.Snapshots != nil {
		t.Fatalf("snapshots tracked without opt-in: %v", res.Snapshots)
	}
}
