package models

import "time"

// FlowKind categorizes the direction of a statement transaction relative to
// the investor.
type FlowKind string

const (
	// FlowContribution is money leaving the investor: purchases and SIP instalments.
	FlowContribution FlowKind = "contribution"
	// FlowReturn is money coming back: redemptions, dividend payouts, switches out.
	FlowReturn FlowKind = "return"
)

// CashFlowSeries holds parallel dated, signed cash flows for one scheme.
// Negative amounts are contributions, positive amounts are money returned to
// the investor. The last entry is always the synthetic terminal valuation,
// so a normalized series is never empty.
type CashFlowSeries struct {
	Dates   []time.Time
	Amounts []float64
}

// Len returns the number of cash flows in the series.
func (s CashFlowSeries) Len() int {
	return len(s.Amounts)
}

// Append adds one flow to the end of the series.
func (s *CashFlowSeries) Append(date time.Time, amount float64) {
	s.Dates = append(s.Dates, date)
	s.Amounts = append(s.Amounts, amount)
}
