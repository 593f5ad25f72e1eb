package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/tealscan/internal/models"
)

// Aggregate folds evaluated schemes into portfolio totals and the ordered
// record list. It must be given every evaluation of a scan; there is no
// partial summary.
//
//   - net worth sums record values
//   - total invested sums the raw scheme cost basis (absent cost counts as 0)
//   - hidden fees sum the unrounded fee estimates
//   - total gain is derived from the two totals, never accumulated
func Aggregate(evals []Evaluation) (models.PortfolioSummary, []models.SchemeRecord) {
	netWorth := decimal.Zero
	invested := decimal.Zero
	fees := decimal.Zero
	records := make([]models.SchemeRecord, 0, len(evals))

	for _, ev := range evals {
		netWorth = netWorth.Add(ev.Record.Value)
		if ev.Scheme != nil {
			invested = invested.Add(ev.Scheme.Valuation.CostOrZero())
		}
		fees = fees.Add(ev.Fee)
		records = append(records, ev.Record)
	}

	summary := models.PortfolioSummary{
		NetWorth:      netWorth,
		TotalInvested: invested,
		TotalGain:     netWorth.Sub(invested),
		HiddenFees:    fees,
	}
	return summary, records
}

// Allocate splits net worth by category, largest holding first. Weights are
// percentages of the records' total value, rounded to 2 dp.
func Allocate(records []models.SchemeRecord) []models.CategoryAllocation {
	totals := make(map[models.Category]decimal.Decimal)
	netWorth := decimal.Zero
	for _, r := range records {
		totals[r.Category] = totals[r.Category].Add(r.Value)
		netWorth = netWorth.Add(r.Value)
	}

	allocation := make([]models.CategoryAllocation, 0, len(totals))
	for category, value := range totals {
		weight := decimal.Zero
		if netWorth.IsPositive() {
			weight = value.Div(netWorth).Mul(decimal.NewFromInt(100)).RoundBank(2)
		}
		allocation = append(allocation, models.CategoryAllocation{
			Category: category,
			Value:    value,
			Weight:   weight,
		})
	}

	sort.Slice(allocation, func(i, j int) bool {
		if c := allocation[i].Value.Cmp(allocation[j].Value); c != 0 {
			return c > 0
		}
		return allocation[i].Category < allocation[j].Category
	})
	return allocation
}
