package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	d, err = ParseDate("2024-03-01T23:30:00+05:30")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String(), "timestamps keep their own calendar day")
	assert.Equal(t, time.UTC, d.Location())

	_, err = ParseDate("01/03/2024")
	assert.ErrorContains(t, err, "invalid date")
}

func TestNewDate_TruncatesToMidnight(t *testing.T) {
	d := NewDate(time.Date(2025, 10, 19, 17, 45, 0, 0, time.UTC))
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, "2025-10-19", d.String())
}

func TestDate_JSON(t *testing.T) {
	var v struct {
		A Date `json:"a"`
		B Date `json:"b"`
		C Date `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2023-04-10","b":null,"c":""}`), &v))
	assert.Equal(t, "2023-04-10", v.A.String())
	assert.True(t, v.B.IsZero())
	assert.True(t, v.C.IsZero())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"2023-04-10","b":null,"c":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"a":20230410}`), &v))
}

func TestTransaction_NullableAmount(t *testing.T) {
	var txns []Transaction
	require.NoError(t, json.Unmarshal([]byte(`[
		{"date":"2023-04-10","description":"Purchase","amount":"6000.50"},
		{"date":"2023-04-10","description":"*** Address updated ***","amount":null},
		{"date":"2023-04-11","description":"Redemption","amount":-250}
	]`), &txns))

	assert.Equal(t, "6000.5", txns[0].AmountOrZero().String())
	assert.False(t, txns[1].Amount.Valid)
	assert.True(t, txns[1].AmountOrZero().IsZero())
	assert.Equal(t, "-250", txns[2].AmountOrZero().String())
}

func TestValuation_OrZero(t *testing.T) {
	var v Valuation
	require.NoError(t, json.Unmarshal([]byte(`{"value":"1500.25","cost":null}`), &v))
	assert.Equal(t, "1500.25", v.ValueOrZero().String())
	assert.True(t, v.CostOrZero().IsZero())
}

func TestStatement_SchemeCount(t *testing.T) {
	var nilStmt *Statement
	assert.Equal(t, 0, nilStmt.SchemeCount())

	s := &Statement{Folios: []Folio{
		{Schemes: []Scheme{{Name: "A"}, {Name: "B"}}},
		{Schemes: []Scheme{{Name: "C"}}},
	}}
	assert.Equal(t, 3, s.SchemeCount())
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{`"1,234.50"`, true, "1234.5"},
		{`-42`, true, "-42"},
		{`null`, false, "0"},
		{`""`, false, "0"},
		{`"N.A."`, false, "0"},
	}
	for _, tt := range tests {
		var n Number
		require.NoError(t, json.Unmarshal([]byte(tt.in), &n), tt.in)
		assert.Equal(t, tt.valid, n.Valid, tt.in)
		assert.Equal(t, tt.want, n.OrZero().String(), tt.in)
	}

	var n Number
	assert.Error(t, json.Unmarshal([]byte(`true`), &n))
	assert.Error(t, json.Unmarshal([]byte(`{"v":1}`), &n))

	out, err := json.Marshal(NewNumber(decimal.RequireFromString("12.5")))
	require.NoError(t, err)
	assert.Equal(t, `"12.5"`, string(out))
}
