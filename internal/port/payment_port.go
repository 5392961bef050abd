package port

import (
	"context"

	"github.com/wuwei-shop/storefront/internal/domain"
)

// PaymentProvider is the external payment-link collaborator. A failed call
// must leave the cart and order state untouched.
type PaymentProvider interface {
	CreatePaymentLink(ctx context.Context, productRef, email string) (domain.PaymentLink, error)
}
