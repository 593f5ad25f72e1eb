package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a nullable decimal read leniently from statements. Parsers emit
// placeholders such as "" or "N.A." for values they could not read; those
// decode as absent rather than failing the statement.
type Number struct {
	decimal.NullDecimal
}

// NewNumber returns a present Number holding d.
func NewNumber(d decimal.Decimal) Number {
	return Number{decimal.NewNullDecimal(d)}
}

// UnmarshalJSON accepts a JSON number, a numeric string (thousands separators
// allowed) or null. Any other string is treated as absent.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		if d, err := decimal.NewFromString(s); err == nil {
			*n = NewNumber(d)
		}
		return nil
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("invalid number %s: %w", data, err)
		}
		*n = NewNumber(d)
		return nil
	default:
		return fmt.Errorf("number must be a JSON number or string, got %s", data)
	}
}

// OrZero returns the value, 0 when absent.
func (n Number) OrZero() decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Decimal
}
