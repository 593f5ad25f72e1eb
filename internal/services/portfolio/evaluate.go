package portfolio

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/tealscan/internal/common"
	"github.com/bobmcallan/tealscan/internal/models"
)

// Evaluation is the outcome of evaluating one included scheme. Fee is the
// unrounded commission estimate; Record.Loss is its presentation rounding.
// Scheme is the raw input, kept so totals can read its cost basis.
type Evaluation struct {
	Record models.SchemeRecord
	Fee    decimal.Decimal
	Scheme *models.Scheme
}

// Evaluator turns one statement scheme into a performance record by running
// the classifier, fee estimator, cash-flow normalizer and return engine.
type Evaluator struct {
	classifier *Classifier
	fees       FeeEstimator
	normalizer *Normalizer
	minValue   decimal.Decimal
}

// NewEvaluator builds an Evaluator from the scan configuration.
func NewEvaluator(config *common.Config) *Evaluator {
	return &Evaluator{
		classifier: NewClassifier(config.Classifier),
		fees:       NewFeeEstimator(config.Fees.RegularRate),
		normalizer: NewNormalizer(config.CashFlow.ContributionKeywords),
		minValue:   decimal.NewFromFloat(config.Scan.MinValue),
	}
}

// Included reports whether a scheme passes the inclusion filter. Schemes
// valued below the minimum are closed or negligible positions.
func (e *Evaluator) Included(scheme *models.Scheme) bool {
	return !scheme.Valuation.ValueOrZero().LessThan(e.minValue)
}

// Evaluate produces the record for scheme as of today, or ok=false when the
// scheme is excluded. folio may be nil.
func (e *Evaluator) Evaluate(folio *models.Folio, scheme *models.Scheme, today time.Time) (ev Evaluation, ok bool) {
	if !e.Included(scheme) {
		return Evaluation{}, false
	}

	value := scheme.Valuation.ValueOrZero()
	category, channel := e.classifier.Classify(scheme.Name)
	fee := e.fees.Estimate(channel, value)

	series := e.normalizer.Normalize(scheme, today)
	rate, available := XIRR(series)

	record := models.SchemeRecord{
		FundName:      scheme.Name,
		ISIN:          scheme.ISIN,
		Category:      category,
		Value:         value,
		Type:          channel,
		XIRR:          decimal.NewFromFloat(rate * 100).RoundBank(2),
		XIRRAvailable: available,
		Loss:          fee.RoundBank(0),
	}
	if folio != nil {
		record.Folio = folio.Folio
		record.AMC = folio.AMC
	}

	return Evaluation{Record: record, Fee: fee, Scheme: scheme}, true
}
