// Package pricing derives cart totals from cart lines and their resolved
// catalog products. All arithmetic is exact decimal; outputs are rounded
// to two decimal places at the edge.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/wuwei-shop/storefront/internal/domain"
)

type Config struct {
	// TaxRate is applied to the subtotal, e.g. 0.08 for 8%.
	TaxRate decimal.Decimal

	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	// Zero keeps shipping unconditionally free, matching current behavior.
	FreeShippingThreshold decimal.Decimal

	// FlatShippingRate is charged below the threshold when one is set.
	FlatShippingRate decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		TaxRate: decimal.NewFromFloat(0.08),
	}
}

// Line pairs a cart item with its resolved product. A line whose product
// could not be resolved contributes price zero to the totals.
type Line struct {
	Item    domain.CartItem
	Product domain.Product
}

type Quote struct {
	ItemCount int
	Subtotal  domain.Money
	Tax       domain.Money
	Shipping  domain.Money
	Total     domain.Money
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) Engine {
	return Engine{cfg: cfg}
}

// Quote computes totals for the given lines. It is deterministic and
// independent of line order.
func (e Engine) Quote(lines []Line) Quote {
	var count int
	subtotal := decimal.Zero

	for _, line := range lines {
		count += line.Item.Quantity

		price, err := line.Product.PriceAmount()
		if err != nil {
			// unresolved or malformed product price contributes zero
			continue
		}

		qty := decimal.NewFromInt(int64(line.Item.Quantity))
		subtotal = subtotal.Add(price.Mul(qty))
	}

	tax := subtotal.Mul(e.cfg.TaxRate)
	shipping := e.shipping(subtotal)

	// Round components first so the rendered numbers always add up.
	subtotal = subtotal.Round(2)
	tax = tax.Round(2)
	shipping = shipping.Round(2)
	total := subtotal.Add(tax).Add(shipping)

	return Quote{
		ItemCount: count,
		Subtotal:  domain.USD(subtotal),
		Tax:       domain.USD(tax),
		Shipping:  domain.USD(shipping),
		Total:     domain.USD(total),
	}
}

func (e Engine) shipping(subtotal decimal.Decimal) decimal.Decimal {
	if e.cfg.FreeShippingThreshold.IsZero() {
		return decimal.Zero
	}
	if subtotal.GreaterThanOrEqual(e.cfg.FreeShippingThreshold) {
		return decimal.Zero
	}
	return e.cfg.FlatShippingRate
}
