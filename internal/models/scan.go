package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Category is the best-effort asset class inferred from a scheme name.
type Category string

const (
	CategoryDebt   Category = "Debt"
	CategoryGold   Category = "Gold"
	CategoryEquity Category = "Equity"
)

// Channel is the distribution plan of a scheme.
type Channel string

const (
	ChannelRegular Channel = "Regular"
	ChannelDirect  Channel = "Direct"
)

// SchemeRecord is the per-scheme performance result.
type SchemeRecord struct {
	FundName      string
	Folio         string
	AMC           string
	ISIN          string
	Category      Category
	Value         decimal.Decimal
	Type          Channel
	XIRR          decimal.Decimal // annualised percentage, 2 dp
	XIRRAvailable bool
	Loss          decimal.Decimal // estimated annual commission, whole units
}

// MarshalJSON emits decimals as plain JSON numbers.
func (r SchemeRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FundName      string      `json:"fund_name"`
		Folio         string      `json:"folio,omitempty"`
		AMC           string      `json:"amc,omitempty"`
		ISIN          string      `json:"isin,omitempty"`
		Category      Category    `json:"category"`
		Value         json.Number `json:"value"`
		Type          Channel     `json:"type"`
		XIRR          json.Number `json:"xirr"`
		XIRRAvailable bool        `json:"xirr_available"`
		Loss          json.Number `json:"loss"`
	}{
		FundName:      r.FundName,
		Folio:         r.Folio,
		AMC:           r.AMC,
		ISIN:          r.ISIN,
		Category:      r.Category,
		Value:         jsonNumber(r.Value),
		Type:          r.Type,
		XIRR:          jsonNumber(r.XIRR),
		XIRRAvailable: r.XIRRAvailable,
		Loss:          jsonNumber(r.Loss),
	})
}

// PortfolioSummary holds the portfolio totals over all included schemes.
// TotalGain is always NetWorth - TotalInvested.
type PortfolioSummary struct {
	NetWorth      decimal.Decimal
	TotalInvested decimal.Decimal
	TotalGain     decimal.Decimal
	HiddenFees    decimal.Decimal
}

// MarshalJSON emits decimals as plain JSON numbers.
func (s PortfolioSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		NetWorth      json.Number `json:"net_worth"`
		TotalInvested json.Number `json:"total_invested"`
		TotalGain     json.Number `json:"total_gain"`
		HiddenFees    json.Number `json:"hidden_fees"`
	}{
		NetWorth:      jsonNumber(s.NetWorth),
		TotalInvested: jsonNumber(s.TotalInvested),
		TotalGain:     jsonNumber(s.TotalGain),
		HiddenFees:    jsonNumber(s.HiddenFees),
	})
}

// CategoryAllocation is the share of net worth held in one category.
type CategoryAllocation struct {
	Category Category
	Value    decimal.Decimal
	Weight   decimal.Decimal // percentage of net worth, 2 dp
}

// MarshalJSON emits decimals as plain JSON numbers.
func (a CategoryAllocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category Category    `json:"category"`
		Value    json.Number `json:"value"`
		Weight   json.Number `json:"weight"`
	}{
		Category: a.Category,
		Value:    jsonNumber(a.Value),
		Weight:   jsonNumber(a.Weight),
	})
}

// ScanResult is the complete output of one statement scan.
type ScanResult struct {
	Investor   string               `json:"investor,omitempty"`
	Period     StatementPeriod      `json:"statement_period"`
	AsOf       Date                 `json:"as_of"`
	Summary    PortfolioSummary     `json:"summary"`
	Funds      []SchemeRecord       `json:"funds"`
	Allocation []CategoryAllocation `json:"allocation"`
	Excluded   int                  `json:"excluded"`
}

func jsonNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
