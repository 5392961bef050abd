package domain

import (
	"time"
)

type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
}

type CartItem struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	ProductID string    `json:"productId"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// Key identifies the line a repeated addition merges into.
func (i CartItem) Key() CartItemKey {
	return CartItemKey{SessionID: i.SessionID, ProductID: i.ProductID, Size: i.Size}
}

// CartItemKey is the merge key: at most one line per (session, product, size).
type CartItemKey struct {
	SessionID string
	ProductID string
	Size      string
}
