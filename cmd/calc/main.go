// Command calc runs one clearance simulation from the command line and
// prints the headline figures plus the yearly balance table.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ranjithui/rental-loan-calculator/internal/domain/amortization"
	"github.com/ranjithui/rental-loan-calculator/internal/reference"
)

func main() {
	var (
		segment   = flag.String("segment", "", "property segment preset to start from (see -list-segments)")
		listSegs  = flag.Bool("list-segments", false, "print the available segment presets and exit")
		property  = flag.Float64("property", 0, "property value")
		down      = flag.Float64("down", 0, "down payment percent (0-100)")
		rate      = flag.Float64("rate", 0, "annual interest rate percent")
		tenure    = flag.Int("tenure", 0, "loan tenure in years")
		yield     = flag.Float64("yield", 0, "annual rental yield percent")
		currency  = flag.String("currency", "", "display currency code (default: base currency)")
		maxMonths = flag.Int("max-months", 0, "simulation horizon in months (0 = default)")
		noTable   = flag.Bool("no-table", false, "suppress the yearly balance table")
	)
	flag.Parse()

	ref := reference.Defaults()

	if *listSegs {
		printSegments(ref)
		return
	}

	in := amortization.LoanInputs{
		PropertyValue:         *property,
		DownPaymentPct:        *down,
		AnnualInterestRatePct: *rate,
		TenureYears:           *tenure,
		AnnualRentalYieldPct:  *yield,
	}
	if *segment != "" {
		seg, ok := ref.Segment(*segment)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown segment %q (try -list-segments)\n", *segment)
			os.Exit(2)
		}
		applyPreset(&in, seg)
	}

	code := *currency
	if code == "" {
		code = ref.BaseCurrency
	}
	cur, ok := ref.Currency(code)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown currency %q\n", code)
		os.Exit(2)
	}

	res, err := amortization.Compute(in, amortization.Options{
		MaxMonths:            *maxMonths,
		TrackYearlySnapshots: !*noTable,
		TrackTotalInterest:   true,
	})
	if err != nil {
		var hz *amortization.HorizonExhaustedError
		if errors.As(err, &hz) {
			fmt.Fprintf(os.Stderr, "loan does not clear within %d months; outstanding %s%.2f\n",
				hz.MaxMonths, cur.Symbol, hz.OutstandingBalance*cur.Rate)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	money := func(v float64) string { return fmt.Sprintf("%s%.2f", cur.Symbol, v*cur.Rate) }
	fmt.Printf("Loan amount:          %s\n", money(res.LoanAmount))
	fmt.Printf("Monthly payment:      %s\n", money(res.MonthlyPayment))
	fmt.Printf("Monthly rental:       %s\n", money(res.MonthlyRentalIncome))
	fmt.Printf("Total interest paid:  %s\n", money(res.TotalInterestPaid))
	fmt.Printf("Cleared in:           %.2f years (%d months)\n", res.YearsToClear, res.MonthsSimulated)

	if !*noTable && len(res.Snapshots) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "Year\tRemaining balance\t")
		for _, s := range res.Snapshots {
			fmt.Fprintf(w, "%d\t%s\t\n", s.Year, money(s.RemainingBalance))
		}
		w.Flush()
	}
}

// applyPreset fills any input the user left at its zero value from the
// segment preset, so flags still win over the preset.
func applyPreset(in *amortization.LoanInputs, seg reference.Segment) {
	if in.PropertyValue == 0 {
		in.PropertyValue = seg.PropertyValue
	}
	if in.DownPaymentPct == 0 {
		in.DownPaymentPct = seg.DownPaymentPct
	}
	if in.AnnualInterestRatePct == 0 {
		in.AnnualInterestRatePct = seg.InterestRatePct
	}
	if in.TenureYears == 0 {
		in.TenureYears = seg.TenureYears
	}
	if in.AnnualRentalYieldPct == 0 {
		in.AnnualRentalYieldPct = seg.TypicalRentalYieldPct
	}
}

func printSegments(ref reference.Tables) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Segment\tProperty value\tDown %\tRate %\tTenure\tYield %\tAppreciation %")
	for _, s := range ref.Segments {
		fmt.Fprintf(w, "%s\t%.0f\t%.1f\t%.2f\t%dy\t%.1f\t%.1f\n",
			s.Name, s.PropertyValue, s.DownPaymentPct, s.InterestRatePct,
			s.TenureYears, s.TypicalRentalYieldPct, s.TypicalAppreciationPct)
	}
	w.Flush()
}
