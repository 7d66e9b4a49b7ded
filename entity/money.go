package entity

import (
	"github.com/shopspring/decimal"
)

// Money is an amount in minor units of a currency with a fixed number of fraction digits.
type Money struct {
	Minor    int64
	Currency string
	Scale    int32
}

// Decimal formats the amount with exactly Scale fraction digits, e.g. 10000 MYR -> "100.00".
func (m Money) Decimal() string {
	return decimal.New(m.Minor, -m.Scale).StringFixed(m.Scale)
}

func (m Money) IsZero() bool {
	return m.Minor == 0
}

func (m Money) IsNegative() bool {
	return m.Minor < 0
}

func (m Money) String() string {
	return m.Decimal() + " " + m.Currency
}
