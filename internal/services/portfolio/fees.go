package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/tealscan/internal/models"
)

// FeeEstimator estimates the annual distributor commission lost on a holding.
//
// This is an estimate, not a measured figure: regular plans are charged a flat
// fraction of current value, direct plans nothing. It ignores holding period,
// the scheme's actual expense ratio differential, and intra-year value changes.
type FeeEstimator struct {
	regularRate decimal.Decimal
}

// NewFeeEstimator returns an estimator charging regularRate (e.g. 0.01 for 1%)
// on Regular-channel holdings.
func NewFeeEstimator(regularRate float64) FeeEstimator {
	return FeeEstimator{regularRate: decimal.NewFromFloat(regularRate)}
}

// Estimate returns the unrounded estimated annual commission for a holding.
func (e FeeEstimator) Estimate(channel models.Channel, value decimal.Decimal) decimal.Decimal {
	if channel != models.ChannelRegular {
		return decimal.Zero
	}
	return value.Mul(e.regularRate)
}
