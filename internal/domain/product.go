package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"` // decimal string, 2dp
	Image       string    `json:"image"`
	Sizes       []string  `json:"sizes"`
	InStock     int       `json:"inStock"`
	Category    string    `json:"category"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PriceAmount parses the stored price string into an exact decimal.
func (p Product) PriceAmount() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(p.Price)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("price[%s] is not a valid decimal: %w", p.Price, err)
	}
	return d, nil
}

// HasSize reports whether size is one of the product's available sizes.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
