// Package reference holds the static lookup tables the presentation layer
// needs around the engine: property-segment presets for input auto-fill and
// fixed currency-conversion entries for display. Tables are plain values
// passed to whoever needs them, never process-wide mutable state, and the
// engine itself knows nothing about them.
package reference

// Segment is an input preset for a class of property: a starting price plus
// the rental ROI and appreciation figures typically quoted for that class.
type Segment struct {
	Name                   string  `json:"name"`
	PropertyValue          float64 `json:"property_value"`
	DownPaymentPct         float64 `json:"down_payment_pct"`
	InterestRatePct        float64 `json:"interest_rate_pct"`
	TenureYears            int     `json:"tenure_years"`
	TypicalRentalYieldPct  float64 `json:"typical_rental_yield_pct"`
	TypicalAppreciationPct float64 `json:"typical_appreciation_pct"`
}

// Currency is a static display-conversion entry. Rate is units of this
// currency per base-currency unit; applying it is strictly a rendering step.
type Currency struct {
	Code   string  `json:"code"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

type Tables struct {
	BaseCurrency string     `json:"base_currency"`
	Currencies   []Currency `json:"currencies"`
	Segments     []Segment  `json:"segments"`
}

// Defaults returns the built-in tables. Figures are illustrative reference
// constants, not market data.
func Defaults() Tables {
	return Tables{
		BaseCurrency: "INR",
		Currencies: []Currency{
			{Code: "INR", Symbol: "₹", Rate: 1},
			{Code: "USD", Symbol: "$", Rate: 0.012},
			{Code: "EUR", Symbol: "€", Rate: 0.011},
			{Code: "AED", Symbol: "د.إ", Rate: 0.044},
			{Code: "SGD", Symbol: "S$", Rate: 0.016},
		},
		Segments: []Segment{
			{Name: "compact-apartment", PropertyValue: 2_500_000, DownPaymentPct: 20, InterestRatePct: 8.5, TenureYears: 20, TypicalRentalYieldPct: 4.5, TypicalAppreciationPct: 5},
			{Name: "premium-apartment", PropertyValue: 5_000_000, DownPaymentPct: 25, InterestRatePct: 4.0, TenureYears: 25, TypicalRentalYieldPct: 6.0, TypicalAppreciationPct: 6},
			{Name: "villa", PropertyValue: 20_000_000, DownPaymentPct: 30, InterestRatePct: 8.75, TenureYears: 25, TypicalRentalYieldPct: 3.0, TypicalAppreciationPct: 7},
			{Name: "commercial-office", PropertyValue: 50_000_000, DownPaymentPct: 25, InterestRatePct: 9.5, TenureYears: 15, TypicalRentalYieldPct: 8.0, TypicalAppreciationPct: 4},
		},
	}
}

// Currency looks up a conversion entry by code; codes are matched verbatim.
func (t Tables) Currency(code string) (Currency, bool) {
	for _, c := range t.Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// Segment looks up a preset by name.
func (t Tables) Segment(name string) (Segment, bool) {
	for _, s := range t.Segments {
		if s.Name == name {
			return s, true
		}
	}
	return Segment{}, false
}
