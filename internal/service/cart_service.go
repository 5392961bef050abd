// Package service contains the application services that sit between the
// HTTP layer and the repositories: cart mutations with catalog validation,
// and checkout.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wuwei-shop/storefront/internal/domain"
	"github.com/wuwei-shop/storefront/internal/port"
	"github.com/wuwei-shop/storefront/internal/pricing"
)

// CartLineView is a cart item enriched with its resolved product. Product
// is nil when the catalog no longer resolves the reference.
type CartLineView struct {
	domain.CartItem
	Product *domain.Product
}

// CartView is a session's cart together with its priced totals.
type CartView struct {
	SessionID string
	Items     []CartLineView
	Quote     pricing.Quote
}

type CartService struct {
	carts   port.CartRepository
	catalog port.CatalogRepository
	engine  pricing.Engine
}

func NewCartService(carts port.CartRepository, catalog port.CatalogRepository, engine pricing.Engine) *CartService {
	return &CartService{carts: carts, catalog: catalog, engine: engine}
}

// Get returns the session's cart with each line enriched from the catalog
// and totals derived by the pricing engine.
func (s *CartService) Get(ctx context.Context, sessionID string) (CartView, error) {
	items, err := s.carts.GetItems(ctx, sessionID)
	if err != nil {
		return CartView{}, fmt.Errorf("carts.GetItems: %w", err)
	}

	views := make([]CartLineView, 0, len(items))
	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		view := CartLineView{CartItem: item}
		line := pricing.Line{Item: item}

		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		switch {
		case err == nil:
			view.Product = &product
			line.Product = product
		case errors.Is(err, domain.ErrNotFound):
			// stale reference, line contributes price zero
		default:
			return CartView{}, fmt.Errorf("catalog.GetProduct: %w", err)
		}

		views = append(views, view)
		lines = append(lines, line)
	}

	return CartView{
		SessionID: sessionID,
		Items:     views,
		Quote:     s.engine.Quote(lines),
	}, nil
}

// Add validates the request against the catalog before touching the cart:
// the product must exist, carry the requested size and be in stock.
func (s *CartService) Add(ctx context.Context, sessionID, productID, size string, quantity int) (domain.CartItem, error) {
	if sessionID == "" {
		return domain.CartItem{}, domain.ValidationError{Field: "sessionId", Reason: "is empty"}
	}
	if productID == "" {
		return domain.CartItem{}, domain.ValidationError{Field: "productId", Reason: "is empty"}
	}
	if size == "" {
		return domain.CartItem{}, domain.ValidationError{Field: "size", Reason: "is empty"}
	}
	if quantity < 1 {
		return domain.CartItem{}, domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.CartItem{}, domain.ValidationError{Field: "productId", Reason: "does not resolve to a product"}
		}
		return domain.CartItem{}, fmt.Errorf("catalog.GetProduct: %w", err)
	}
	if !product.HasSize(size) {
		return domain.CartItem{}, domain.ValidationError{Field: "size", Reason: fmt.Sprintf("%q is not available for this product", size)}
	}
	if product.InStock < 1 {
		return domain.CartItem{}, domain.ValidationError{Field: "productId", Reason: "is out of stock"}
	}

	item, err := s.carts.AddItem(ctx, domain.CartItem{
		SessionID: sessionID,
		ProductID: productID,
		Size:      size,
		Quantity:  quantity,
	})
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("carts.AddItem: %w", err)
	}
	return item, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, id string, quantity int) (domain.CartItem, bool, error) {
	if id == "" {
		return domain.CartItem{}, false, domain.ValidationError{Field: "id", Reason: "is empty"}
	}
	return s.carts.UpdateQuantity(ctx, id, quantity)
}

func (s *CartService) Remove(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, domain.ValidationError{Field: "id", Reason: "is empty"}
	}
	return s.carts.RemoveItem(ctx, id)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.carts.ClearCart(ctx, sessionID)
}
