// Package memory provides mutex-guarded in-memory implementations of the
// storefront repositories. It is the default backend; every operation is a
// single atomic map mutation, so concurrent sessions never observe each
// other's lines.
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

type cartRepository struct {
	mu    sync.RWMutex
	items map[string]domain.CartItem
	order []string // line ids in insertion order, for stable snapshots
}

func NewCart() port.CartRepository {
	return &cartRepository{items: make(map[string]domain.CartItem)}
}

func (r *cartRepository) GetItems(_ context.Context, sessionID string) ([]domain.CartItem, error) {
	if sessionID == "" {
		return nil, domain.ValidationError{Field: "sessionId", Reason: "is empty"}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []domain.CartItem
	for _, id := range r.order {
		if item, ok := r.items[id]; ok && item.SessionID == sessionID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *cartRepository) AddItem(_ context.Context, item domain.CartItem) (domain.CartItem, error) {
	if item.SessionID == "" {
		return domain.CartItem{}, domain.ValidationError{Field: "sessionId", Reason: "is empty"}
	}
	if item.ProductID == "" {
		return domain.CartItem{}, domain.ValidationError{Field: "productId", Reason: "is empty"}
	}
	if item.Quantity < 1 {
		return domain.CartItem{}, domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := item.Key()
	for _, id := range r.order {
		existing, ok := r.items[id]
		if !ok || existing.Key() != key {
			continue
		}
		existing.Quantity += item.Quantity
		r.items[id] = existing
		return existing, nil
	}

	item.ID = uuid.NewString()
	item.CreatedAt = time.Now()
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return item, nil
}

func (r *cartRepository) UpdateQuantity(_ context.Context, id string, quantity int) (domain.CartItem, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return domain.CartItem{}, false, fmt.Errorf("cart item[%s]: %w", id, domain.ErrNotFound)
	}

	if quantity <= 0 {
		r.deleteLocked(id)
		return domain.CartItem{}, true, nil
	}

	item.Quantity = quantity
	r.items[id] = item
	return item, false, nil
}

func (r *cartRepository) RemoveItem(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	r.deleteLocked(id)
	return true, nil
}

func (r *cartRepository) ClearCart(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ValidationError{Field: "sessionId", Reason: "is empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var keep []string
	for _, id := range r.order {
		item, ok := r.items[id]
		if !ok {
			continue
		}
		if item.SessionID == sessionID {
			delete(r.items, id)
			continue
		}
		keep = append(keep, id)
	}
	r.order = keep
	return nil
}

// deleteLocked removes a line and its insertion-order entry. Callers hold mu.
func (r *cartRepository) deleteLocked(id string) {
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
