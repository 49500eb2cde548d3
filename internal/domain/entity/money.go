package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units (paise). It is stored as an integer and
// rendered as a two-decimal number in JSON.
type Money int64

// MoneyFromDecimal converts a major-unit decimal (e.g. 28.50) into Money
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Shift(2).Round(0).IntPart())
}

// Decimal returns the amount in major units
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Times multiplies by an item quantity
func (m Money) Times(qty int) Money {
	return m * Money(qty)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	d, err := decimal.NewFromString(string(trimQuotes(data)))
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", string(data), err)
	}
	*m = MoneyFromDecimal(d)
	return nil
}

func trimQuotes(b []byte) []byte {
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		return b[1 : len(b)-1]
	}
	return b
}
