package portfolio

import (
	"strings"
	"time"

	"github.com/bobmcallan/tealscan/internal/models"
)

// Normalizer turns a scheme's statement transactions into a signed cash-flow
// series for XIRR. The sign printed on the statement is not trusted: the
// direction is read from the description instead.
type Normalizer struct {
	contributionKeywords []string
}

// NewNormalizer returns a Normalizer that treats any description containing
// one of keywords (case-insensitive) as a contribution.
func NewNormalizer(keywords []string) *Normalizer {
	return &Normalizer{contributionKeywords: upperAll(keywords)}
}

// Kind classifies a transaction description.
func (n *Normalizer) Kind(description string) models.FlowKind {
	if containsAny(strings.ToUpper(description), n.contributionKeywords) {
		return models.FlowContribution
	}
	return models.FlowReturn
}

// Normalize builds the cash-flow series for scheme as seen on today:
//   - zero-amount rows (unit reinstatements, informational lines) are dropped
//   - rows without a date are dropped, they cannot be placed in time
//   - contributions become negative, everything else positive
//   - the current valuation is appended as a positive flow dated today
//
// Input order is preserved; the series is not sorted.
func (n *Normalizer) Normalize(scheme *models.Scheme, today time.Time) models.CashFlowSeries {
	series := models.CashFlowSeries{
		Dates:   make([]time.Time, 0, len(scheme.Transactions)+1),
		Amounts: make([]float64, 0, len(scheme.Transactions)+1),
	}

	for _, txn := range scheme.Transactions {
		amount := txn.AmountOrZero()
		if amount.IsZero() || txn.Date.IsZero() {
			continue
		}
		flow := amount.Abs().InexactFloat64()
		if n.Kind(txn.Description) == models.FlowContribution {
			flow = -flow
		}
		series.Append(txn.Date.Time, flow)
	}

	series.Append(today, scheme.Valuation.ValueOrZero().InexactFloat64())
	return series
}
