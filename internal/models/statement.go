// Package models defines data structures for TealScan
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date layout used by parsed statements.
const DateLayout = "2006-01-02"

// Date is a calendar date. It is stored as midnight UTC so that day
// arithmetic between two Dates is always a whole number of days.
type Date struct {
	time.Time
}

// NewDate returns the calendar date of t (in t's own location) as a Date.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "YYYY-MM-DD", falling back to RFC3339 timestamps.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return NewDate(t), nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON emits the date as "YYYY-MM-DD", or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD", RFC3339 or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Transaction is one statement line for a scheme. Amount is nullable: the
// statement carries informational rows without an amount, and unreadable
// amounts are treated the same way.
type Transaction struct {
	Date        Date   `json:"date"`
	Description string `json:"description"`
	Amount      Number `json:"amount"`
	Units       Number `json:"units,omitempty"`
	NAV         Number `json:"nav,omitempty"`
	Balance     Number `json:"balance,omitempty"`
	Type        string `json:"type,omitempty"`
}

// AmountOrZero returns the transaction amount, treating a missing amount as 0.
func (t Transaction) AmountOrZero() decimal.Decimal {
	return t.Amount.OrZero()
}

// Valuation is a scheme's market value and cost basis as of the statement date.
type Valuation struct {
	Date  Date   `json:"date"`
	NAV   Number `json:"nav,omitempty"`
	Value Number `json:"value"`
	Cost  Number `json:"cost"`
}

// ValueOrZero returns the current value, 0 when absent.
func (v Valuation) ValueOrZero() decimal.Decimal {
	return v.Value.OrZero()
}

// CostOrZero returns the cost basis, 0 when absent.
func (v Valuation) CostOrZero() decimal.Decimal {
	return v.Cost.OrZero()
}

// Scheme is one fund holding within a folio.
type Scheme struct {
	Name         string        `json:"scheme"`
	ISIN         string        `json:"isin,omitempty"`
	AMFI         string        `json:"amfi,omitempty"`
	Advisor      string        `json:"advisor,omitempty"`
	RTA          string        `json:"rta,omitempty"`
	Valuation    Valuation     `json:"valuation"`
	Transactions []Transaction `json:"transactions"`
}

// Folio groups the schemes held under one registration.
type Folio struct {
	Folio   string   `json:"folio"`
	AMC     string   `json:"amc"`
	PAN     string   `json:"PAN,omitempty"`
	Schemes []Scheme `json:"schemes"`
}

// StatementPeriod is the date range a statement covers.
type StatementPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// InvestorInfo identifies the statement holder.
type InvestorInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Mobile  string `json:"mobile,omitempty"`
	Address string `json:"address,omitempty"`
}

// Statement is an already-parsed consolidated account statement.
type Statement struct {
	StatementPeriod StatementPeriod `json:"statement_period"`
	InvestorInfo    InvestorInfo    `json:"investor_info"`
	CASType         string          `json:"cas_type,omitempty"`
	FileType        string          `json:"file_type,omitempty"`
	Folios          []Folio         `json:"folios"`
}

// SchemeCount returns the number of schemes across all folios.
func (s *Statement) SchemeCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, f := range s.Folios {
		n += len(f.Schemes)
	}
	return n
}
