package port

import (
	"context"

	"github.com/wuwei-shop/storefront/internal/domain"
)

type CartRepository interface {
	// GetItems returns all lines for a session. Order is stable within a
	// snapshot but not contractual.
	GetItems(ctx context.Context, sessionID string) ([]domain.CartItem, error)

	// AddItem merges into an existing (session, product, size) line by
	// accumulating quantity, or creates a new line. Returns the stored line.
	AddItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error)

	// UpdateQuantity replaces a line's quantity. A quantity <= 0 deletes the
	// line and reports removed=true. Missing id yields domain.ErrNotFound.
	UpdateQuantity(ctx context.Context, id string, quantity int) (item domain.CartItem, removed bool, err error)

	// RemoveItem deletes a line if present. Absence is not an error.
	RemoveItem(ctx context.Context, id string) (bool, error)

	// ClearCart deletes every line of the session. Idempotent.
	ClearCart(ctx context.Context, sessionID string) error
}
