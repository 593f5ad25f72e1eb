package portfolio

import (
	"math"
	"sort"
	"time"

	"github.com/bobmcallan/tealscan/internal/models"
)

// daysPerYear is the XIRR day-count basis: (1+r)^(days/365).
const daysPerYear = 365.0

// minRate is the solver floor. A near-total loss still has a root above it.
const minRate = -0.999999

// cashFlow represents a single cash flow for XIRR calculation.
// Negative values = money out (purchases), positive values = money in
// (redemptions, dividends, current value).
type cashFlow struct {
	date   time.Time
	amount float64
}

// XIRR computes the annualised money-weighted return of a cash-flow series:
// the rate r at which the sum of amount_i / (1+r)^(days_i/365) is zero, with
// days_i counted from the earliest flow.
//
// The series does not need to be in date order. The returned rate is a
// fraction (0.12 = 12%). ok is false when no meaningful return exists: fewer
// than two flows, all flows of one sign, non-finite amounts, or the solver
// failing to converge. The rate is 0 in that case.
func XIRR(series models.CashFlowSeries) (rate float64, ok bool) {
	if series.Len() < 2 || len(series.Dates) != series.Len() {
		return 0, false
	}

	flows := make([]cashFlow, 0, series.Len())
	hasNeg, hasPos := false, false
	for i, amount := range series.Amounts {
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			return 0, false
		}
		if amount < 0 {
			hasNeg = true
		}
		if amount > 0 {
			hasPos = true
		}
		flows = append(flows, cashFlow{date: series.Dates[i], amount: amount})
	}
	if !hasNeg || !hasPos {
		return 0, false
	}

	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].date.Before(flows[j].date)
	})

	rate = solveXIRR(flows)
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false
	}
	return rate, true
}

// CalculateXIRR is XIRR collapsed to a single value: 0 when no return is available.
func CalculateXIRR(series models.CashFlowSeries) float64 {
	rate, _ := XIRR(series)
	return rate
}

// solveXIRR uses Newton-Raphson to find the rate r such that NPV(r) = 0,
// falling back to bisection when Newton does not converge.
// flows must be sorted by date. Returns NaN when no root is found.
func solveXIRR(flows []cashFlow) float64 {
	const (
		maxIter = 100
		tol     = 1e-7
		stepTol = 1e-12
		maxRate = 100.0 // 10000% annual return cap
	)

	years := yearFractions(flows)

	// Initial guess: simple return, clamped to a reasonable range
	totalInvested := 0.0
	totalReceived := 0.0
	for _, f := range flows {
		if f.amount < 0 {
			totalInvested -= f.amount
		} else {
			totalReceived += f.amount
		}
	}
	rate := 0.1
	if totalInvested > 0 {
		simpleReturn := totalReceived/totalInvested - 1
		if simpleReturn > -0.9 && simpleReturn < 10 {
			rate = simpleReturn
		}
	}

	for iter := 0; iter < maxIter; iter++ {
		npv, dnpv := npvWithDerivative(flows, years, rate)
		if math.IsNaN(npv) || math.IsInf(npv, 0) {
			break
		}
		if math.Abs(npv) < tol {
			return rate
		}
		if dnpv == 0 || math.IsNaN(dnpv) || math.IsInf(dnpv, 0) {
			break
		}

		newRate := rate - npv/dnpv
		if newRate < minRate {
			newRate = minRate
		}
		if newRate > maxRate {
			newRate = maxRate
		}
		// A vanishing step pinned at a clamp is not convergence
		if math.Abs(newRate-rate) < stepTol && newRate > minRate && newRate < maxRate {
			return newRate
		}
		rate = newRate
	}

	return bisectXIRR(flows, years)
}

// yearFractions converts each flow's date to years elapsed since the first flow.
func yearFractions(flows []cashFlow) []float64 {
	base := flows[0].date
	years := make([]float64, len(flows))
	for i, f := range flows {
		days := f.date.Sub(base).Hours() / 24
		years[i] = days / daysPerYear
	}
	return years
}

// npvWithDerivative returns NPV(rate) and dNPV/drate. A non-positive base
// would need a fractional power of a negative number, reported as NaN.
func npvWithDerivative(flows []cashFlow, years []float64, rate float64) (npv, dnpv float64) {
	base := 1 + rate
	if base <= 0 {
		return math.NaN(), math.NaN()
	}
	for i, f := range flows {
		y := years[i]
		discount := math.Pow(base, y)
		if discount == 0 {
			continue
		}
		npv += f.amount / discount
		if y != 0 {
			dnpv -= y * f.amount / (discount * base)
		}
	}
	return npv, dnpv
}

// bisectXIRR uses bisection as a fallback solver for XIRR.
func bisectXIRR(flows []cashFlow, years []float64) float64 {
	const (
		maxIter = 200
		tol     = 1e-6
	)

	npvAt := func(rate float64) float64 {
		npv, _ := npvWithDerivative(flows, years, rate)
		return npv
	}

	// Find bracket [lo, hi] where NPV changes sign
	lo, hi := minRate, 10.0
	npvLo := npvAt(lo)
	npvHi := npvAt(hi)

	if math.IsNaN(npvLo) || math.IsNaN(npvHi) || math.IsInf(npvLo, 0) || math.IsInf(npvHi, 0) {
		return math.NaN()
	}
	if npvLo*npvHi > 0 {
		return math.NaN()
	}

	for iter := 0; iter < maxIter; iter++ {
		mid := (lo + hi) / 2
		npvMid := npvAt(mid)
		if math.IsNaN(npvMid) {
			return math.NaN()
		}
		if math.Abs(npvMid) < tol || (hi-lo)/2 < 1e-12 {
			return mid
		}
		if npvMid*npvLo < 0 {
			hi = mid
		} else {
			lo = mid
			npvLo = npvMid
		}
	}

	return (lo + hi) / 2
}
