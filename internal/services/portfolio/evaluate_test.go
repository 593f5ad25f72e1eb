package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/tealscan/internal/common"
	"github.com/bobmcallan/tealscan/internal/models"
)

func TestEvaluator_ExcludesBelowMinimum(t *testing.T) {
	e := NewEvaluator(common.NewDefaultConfig())

	for _, v := range []string{"0", "99.99", "-5"} {
		scheme := &models.Scheme{Name: "CLOSED FUND", Valuation: models.Valuation{Value: value(v)}}
		_, ok := e.Evaluate(nil, scheme, day(2025, 1, 1))
		assert.False(t, ok, "value %s should be excluded", v)
	}

	_, ok := e.Evaluate(nil, &models.Scheme{Name: "NO VALUATION"}, day(2025, 1, 1))
	assert.False(t, ok, "absent value counts as 0")

	_, ok = e.Evaluate(nil, &models.Scheme{Valuation: models.Valuation{Value: value("100")}}, day(2025, 1, 1))
	assert.True(t, ok, "value of exactly 100 is included")
}

func TestEvaluator_Record(t *testing.T) {
	e := NewEvaluator(common.NewDefaultConfig())
	today := day(2025, 10, 19)

	folio := &models.Folio{Folio: "1234567/89", AMC: "XYZ Mutual Fund"}
	scheme := &models.Scheme{
		Name:      "XYZ Equity Fund",
		ISIN:      "INF000000001",
		Valuation: models.Valuation{Value: value("12000"), Cost: value("10000")},
		Transactions: []models.Transaction{
			txn("2024-10-19", 10000, "Purchase"),
		},
	}

	ev, ok := e.Evaluate(folio, scheme, today)
	require.True(t, ok)

	r := ev.Record
	assert.Equal(t, "XYZ Equity Fund", r.FundName)
	assert.Equal(t, "1234567/89", r.Folio)
	assert.Equal(t, "XYZ Mutual Fund", r.AMC)
	assert.Equal(t, "INF000000001", r.ISIN)
	assert.Equal(t, models.CategoryEquity, r.Category)
	assert.Equal(t, models.ChannelRegular, r.Type)
	assert.Equal(t, "12000", r.Value.String())
	assert.Equal(t, "20", r.XIRR.String())
	assert.True(t, r.XIRRAvailable)
	assert.Equal(t, "120", r.Loss.String())
	assert.Equal(t, "120", ev.Fee.String())
	assert.Same(t, scheme, ev.Scheme)
}

func TestEvaluator_RoundsForPresentationOnly(t *testing.T) {
	e := NewEvaluator(common.NewDefaultConfig())

	scheme := &models.Scheme{
		Name:      "ODD VALUE FUND",
		Valuation: models.Valuation{Value: value("12345.67")},
	}
	ev, ok := e.Evaluate(nil, scheme, day(2025, 1, 1))
	require.True(t, ok)

	assert.Equal(t, "123.4567", ev.Fee.String())
	assert.Equal(t, "123", ev.Record.Loss.String())
}

func TestEvaluator_HalfFeeRoundsToEven(t *testing.T) {
	e := NewEvaluator(common.NewDefaultConfig())

	ev, ok := e.Evaluate(nil, &models.Scheme{Valuation: models.Valuation{Value: value("12050")}}, day(2025, 1, 1))
	require.True(t, ok)
	assert.Equal(t, "120.5", ev.Fee.String())
	assert.Equal(t, "120", ev.Record.Loss.String())
}

func TestEvaluator_DirectPlanHasNoLoss(t *testing.T) {
	e := NewEvaluator(common.NewDefaultConfig())

	ev, ok := e.Evaluate(nil, &models.Scheme{
		Name:      "HDFC LIQUID FUND DIRECT",
		Valuation: models.Valuation{Value: value("10000")},
	}, day(2025, 1, 1))
	require.True(t, ok)

	assert.Equal(t, models.CategoryDebt, ev.Record.Category)
	assert.Equal(t, models.ChannelDirect, ev.Record.Type)
	assert.True(t, ev.Fee.IsZero())
	assert.True(t, ev.Record.Loss.IsZero())
}

func TestEvaluator_NoTransactionsGivesZeroXIRR(t *testing.T) {
	e := NewEvaluator(common.NewDefaultConfig())

	ev, ok := e.Evaluate(nil, &models.Scheme{
		Name:      "ICICI GOLD FUND",
		Valuation: models.Valuation{Value: value("5000")},
	}, day(2025, 1, 1))
	require.True(t, ok)

	assert.True(t, ev.Record.XIRR.IsZero())
	assert.False(t, ev.Record.XIRRAvailable)
	assert.Equal(t, models.CategoryGold, ev.Record.Category)
}

func TestEvaluator_ConfiguredMinimum(t *testing.T) {
	cfg := common.NewDefaultConfig()
	cfg.Scan.MinValue = 1000
	e := NewEvaluator(cfg)

	assert.False(t, e.Included(&models.Scheme{Valuation: models.Valuation{Value: value("999")}}))
	assert.True(t, e.Included(&models.Scheme{Valuation: models.Valuation{Value: value("1000")}}))
}

func TestEvaluator_XIRRRoundedToTwoPlaces(t *testing.T) {
	e := NewEvaluator(common.NewDefaultConfig())

	ev, ok := e.Evaluate(nil, &models.Scheme{
		Valuation: models.Valuation{Value: value("10500")},
		Transactions: []models.Transaction{
			txn("2024-01-01", 10000, "Purchase"),
		},
	}, day(2024, 7, 1))
	require.True(t, ok)

	assert.True(t, ev.Record.XIRRAvailable)
	assert.True(t, ev.Record.XIRR.Equal(ev.Record.XIRR.Round(2)))
	assert.True(t, ev.Record.XIRR.GreaterThan(decimal.NewFromInt(10)))
}
