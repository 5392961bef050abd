package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuwei-shop/storefront/internal/domain"
	"github.com/wuwei-shop/storefront/internal/port"
	"github.com/wuwei-shop/storefront/internal/pricing"
	"github.com/wuwei-shop/storefront/internal/repository/memory"
	"github.com/wuwei-shop/storefront/internal/service"
)

type fakePaymentProvider struct {
	link domain.PaymentLink
	err  error
}

func (p *fakePaymentProvider) CreatePaymentLink(context.Context, string, string) (domain.PaymentLink, error) {
	if p.err != nil {
		return domain.PaymentLink{}, p.err
	}
	return p.link, nil
}

type checkoutFixture struct {
	cart     *service.CartService
	checkout *service.CheckoutService
	catalog  port.CatalogRepository
	payment  *fakePaymentProvider
}

func newCheckoutFixture(t *testing.T) checkoutFixture {
	t.Helper()

	catalog := memory.NewCatalog()
	carts := memory.NewCart()
	orders := memory.NewOrders()
	provider := &fakePaymentProvider{
		link: domain.PaymentLink{ID: "pay_123", URL: "https://pay.example/abc"},
	}

	cart := service.NewCartService(carts, catalog, pricing.NewEngine(pricing.DefaultConfig()))
	checkout := service.NewCheckoutService(cart, orders, provider)

	return checkoutFixture{cart: cart, checkout: checkout, catalog: catalog, payment: provider}
}

func (f checkoutFixture) fillCart(t *testing.T, sessionID string) {
	t.Helper()
	ctx := context.Background()

	a := seedProduct(t, f.catalog, "89.99", 10)
	b := seedProduct(t, f.catalog, "94.99", 10)

	_, err := f.cart.Add(ctx, sessionID, a.ID, "M", 2)
	require.NoError(t, err)
	_, err = f.cart.Add(ctx, sessionID, b.ID, "L", 1)
	require.NoError(t, err)
}

func TestCheckoutComplete(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := t.Context()
	sessionID := gofakeit.UUID()
	f.fillCart(t, sessionID)

	order, err := f.checkout.Complete(ctx, sessionID, "a@b.com", "pay_123", "296.97")
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusCompleted, order.Status)
	assert.Equal(t, "296.97", order.Total.String())
	assert.Equal(t, "pay_123", order.PaymentRef)

	var snapshot []map[string]any
	require.NoError(t, json.Unmarshal([]byte(order.Items), &snapshot))
	assert.Len(t, snapshot, 2)

	// checkout clears the originating cart
	view, err := f.cart.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	// the recorded order is retrievable
	got, err := f.checkout.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestCheckoutCompleteTotalMismatchFailsClosed(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := t.Context()
	sessionID := gofakeit.UUID()
	f.fillCart(t, sessionID)

	_, err := f.checkout.Complete(ctx, sessionID, "a@b.com", "pay_123", "1.00")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	// cart is left intact on failure
	view, err := f.cart.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
}

func TestCheckoutCompleteValidation(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := t.Context()

	tests := []struct {
		name       string
		sessionID  string
		email      string
		paymentRef string
		total      string
		wantError  string
	}{
		{
			name:       "empty session",
			email:      "a@b.com",
			paymentRef: "pay_123",
			total:      "0",
			wantError:  "sessionId is empty",
		},
		{
			name:       "bad email",
			sessionID:  "s1",
			email:      "nope",
			paymentRef: "pay_123",
			total:      "0",
			wantError:  "email is not a valid address",
		},
		{
			name:      "empty payment reference",
			sessionID: "s1",
			email:     "a@b.com",
			total:     "0",
			wantError: "paymentReference is empty",
		},
		{
			name:       "malformed total",
			sessionID:  "s1",
			email:      "a@b.com",
			paymentRef: "pay_123",
			total:      "two hundred",
			wantError:  "total is not a valid decimal",
		},
		{
			name:       "negative total",
			sessionID:  "s1",
			email:      "a@b.com",
			paymentRef: "pay_123",
			total:      "-1",
			wantError:  "total must be >= 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.checkout.Complete(ctx, tt.sessionID, tt.email, tt.paymentRef, tt.total)
			require.EqualError(t, err, tt.wantError)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestCheckoutEmptyCartCompletesAtZero(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := t.Context()

	order, err := f.checkout.Complete(ctx, gofakeit.UUID(), "a@b.com", "pay_123", "0.00")
	require.NoError(t, err)
	assert.Equal(t, "0.00", order.Total.String())
	assert.Equal(t, "[]", order.Items)
}

func TestCreatePaymentLink(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := t.Context()

	link, err := f.checkout.CreatePaymentLink(ctx, gofakeit.UUID(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "pay_123", link.ID)
	assert.Equal(t, "https://pay.example/abc", link.URL)
}

func TestCreatePaymentLinkFailureLeavesCartIntact(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := t.Context()
	sessionID := gofakeit.UUID()
	f.fillCart(t, sessionID)

	f.payment.err = &domain.CollaboratorError{Op: "fourgeeks.CreatePaymentLink", Err: errors.New("unexpected status 500")}

	_, err := f.checkout.CreatePaymentLink(ctx, gofakeit.UUID(), "a@b.com")
	require.Error(t, err)
	assert.True(t, domain.IsCollaborator(err))

	view, err := f.cart.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
}
