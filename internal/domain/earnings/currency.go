package earnings

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnknownCurrency indicates a code missing from the rate table.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currency is a display currency with its static reference rate, expressed
// as units per one USD.
type Currency struct {
	Code   string  `json:"code"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

// Table maps currency codes to reference rates. Injected rather than
// compiled in so rates can be updated or mocked.
type Table map[string]Currency

// DefaultTable returns the built-in reference rates.
func DefaultTable() Table {
	return Table{
		"PLN": {Code: "PLN", Symbol: "zł", Rate: 4.02},
		"USD": {Code: "USD", Symbol: "$", Rate: 1},
		"EUR": {Code: "EUR", Symbol: "€", Rate: 0.93},
		"GBP": {Code: "GBP", Symbol: "£", Rate: 0.79},
		"JPY": {Code: "JPY", Symbol: "¥", Rate: 149.35},
		"AUD": {Code: "AUD", Symbol: "A$", Rate: 1.53},
	}
}

// Lookup returns the currency for a code.
func (t Table) Lookup(code string) (Currency, error) {
	c, ok := t[code]
	if !ok {
		return Currency{}, ErrUnknownCurrency
	}
	return c, nil
}

// Convert scales an amount from one currency to another through the USD
// base. Multiply before dividing so identity conversion stays exact.
func Convert(amount decimal.Decimal, from, to Currency) decimal.Decimal {
	if from.Rate == to.Rate {
		return amount
	}
	return amount.Mul(decimal.NewFromFloat(to.Rate)).Div(decimal.NewFromFloat(from.Rate))
}
