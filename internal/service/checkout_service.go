package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wuwei-shop/storefront/internal/domain"
	"github.com/wuwei-shop/storefront/internal/port"
)

type CheckoutService struct {
	cart    *CartService
	orders  port.OrderRepository
	payment port.PaymentProvider
}

func NewCheckoutService(cart *CartService, orders port.OrderRepository, payment port.PaymentProvider) *CheckoutService {
	return &CheckoutService{cart: cart, orders: orders, payment: payment}
}

// CreatePaymentLink asks the payment collaborator for a hosted payment
// link. Failures surface as a retryable CollaboratorError and never
// touch the cart.
func (s *CheckoutService) CreatePaymentLink(ctx context.Context, productRef, email string) (domain.PaymentLink, error) {
	if productRef == "" {
		return domain.PaymentLink{}, domain.ValidationError{Field: "productId", Reason: "is empty"}
	}
	return s.payment.CreatePaymentLink(ctx, productRef, email)
}

// snapshotLine is the serialized form of a purchased cart line.
type snapshotLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// Complete records a completed order for the session and clears its cart.
// The supplied total is not trusted: the live cart is re-priced and the
// two must agree exactly at two decimal places, otherwise the call fails
// closed and the cart is left intact.
func (s *CheckoutService) Complete(ctx context.Context, sessionID, email, paymentRef, total string) (domain.Order, error) {
	if sessionID == "" {
		return domain.Order{}, domain.ValidationError{Field: "sessionId", Reason: "is empty"}
	}
	if !strings.Contains(email, "@") {
		return domain.Order{}, domain.ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	if paymentRef == "" {
		return domain.Order{}, domain.ValidationError{Field: "paymentReference", Reason: "is empty"}
	}

	claimed, err := decimal.NewFromString(total)
	if err != nil {
		return domain.Order{}, domain.ValidationError{Field: "total", Reason: "is not a valid decimal"}
	}
	if claimed.IsNegative() {
		return domain.Order{}, domain.ValidationError{Field: "total", Reason: "must be >= 0"}
	}

	view, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("cart.Get: %w", err)
	}

	if !view.Quote.Total.Amount.Equal(claimed.Round(2)) {
		return domain.Order{}, domain.ValidationError{
			Field:  "total",
			Reason: fmt.Sprintf("%s does not match the cart total %s", claimed.StringFixed(2), view.Quote.Total),
		}
	}

	snapshot := make([]snapshotLine, 0, len(view.Items))
	for _, line := range view.Items {
		sl := snapshotLine{
			ProductID: line.ProductID,
			Size:      line.Size,
			Quantity:  line.Quantity,
		}
		if line.Product != nil {
			sl.Name = line.Product.Name
			sl.UnitPrice = line.Product.Price
		}
		snapshot = append(snapshot, sl)
	}
	items, err := json.Marshal(snapshot)
	if err != nil {
		return domain.Order{}, fmt.Errorf("json.Marshal: %w", err)
	}

	order, err := s.orders.CreateOrder(ctx, domain.Order{
		Email:      email,
		PaymentRef: paymentRef,
		Total:      view.Quote.Total,
		Items:      string(items),
		Status:     domain.OrderStatusCompleted,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.CreateOrder: %w", err)
	}

	if err := s.cart.Clear(ctx, sessionID); err != nil {
		return order, fmt.Errorf("cart.Clear: %w", err)
	}
	return order, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if id == "" {
		return domain.Order{}, domain.ValidationError{Field: "orderId", Reason: "is empty"}
	}
	return s.orders.GetOrder(ctx, id)
}
