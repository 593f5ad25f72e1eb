package common

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a configured currency code is unknown.
const DefaultCurrency = money.INR

// FormatMoney renders an amount in the given ISO 4217 currency, e.g. ₹1,200.50.
// Unknown codes fall back to DefaultCurrency.
func FormatMoney(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// FormatSignedMoney is FormatMoney with an explicit leading sign for gains.
func FormatSignedMoney(amount decimal.Decimal, code string) string {
	if amount.IsPositive() {
		return "+" + FormatMoney(amount, code)
	}
	return FormatMoney(amount, code)
}

// FormatPct renders a percentage with two decimals.
func FormatPct(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

// FormatSignedPct renders a percentage with an explicit sign.
func FormatSignedPct(pct decimal.Decimal) string {
	if pct.IsPositive() {
		return "+" + FormatPct(pct)
	}
	return FormatPct(pct)
}

// FormatRate renders a fraction (0.01) as a percentage string (1.00%).
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}
