package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// USD wraps an amount in the store currency.
func USD(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: currency.USD}
}

// String renders the amount at two decimal places, e.g. "296.97".
func (m Money) String() string {
	return m.Amount.StringFixed(2)
}
