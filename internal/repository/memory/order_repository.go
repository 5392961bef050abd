package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wuwei-shop/storefront/internal/domain"
	"github.com/wuwei-shop/storefront/internal/port"
)

type orderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewOrders() port.OrderRepository {
	return &orderRepository{orders: make(map[string]domain.Order)}
}

func (r *orderRepository) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	if order.Email == "" {
		return domain.Order{}, domain.ValidationError{Field: "email", Reason: "is empty"}
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	order.ID = uuid.NewString()
	order.CreatedAt = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = order
	return order, nil
}

func (r *orderRepository) GetOrder(_ context.Context, id string) (domain.Order, error) {
	if id == "" {
		return domain.Order{}, domain.ValidationError{Field: "orderId", Reason: "is empty"}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", id, domain.ErrNotFound)
	}
	return order, nil
}
