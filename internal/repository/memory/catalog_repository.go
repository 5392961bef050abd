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

const defaultCategory = "kimono"

type catalogRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string // product ids in insertion order
}

func NewCatalog() port.CatalogRepository {
	return &catalogRepository{products: make(map[string]domain.Product)}
}

func (r *catalogRepository) GetProduct(_ context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, domain.ValidationError{Field: "productId", Reason: "is empty"}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", id, domain.ErrNotFound)
	}
	return product, nil
}

func (r *catalogRepository) ListProducts(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.products[id])
	}
	return products, nil
}

func (r *catalogRepository) ListFeatured(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []domain.Product
	for _, id := range r.order {
		if p := r.products[id]; p.Featured {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *catalogRepository) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	if product.Name == "" {
		return domain.Product{}, domain.ValidationError{Field: "name", Reason: "is empty"}
	}
	if len(product.Sizes) == 0 {
		return domain.Product{}, domain.ValidationError{Field: "sizes", Reason: "must not be empty"}
	}
	if _, err := product.PriceAmount(); err != nil {
		return domain.Product{}, domain.ValidationError{Field: "price", Reason: "is not a valid decimal"}
	}
	if product.InStock < 0 {
		return domain.Product{}, domain.ValidationError{Field: "inStock", Reason: "must be >= 0"}
	}

	product.ID = uuid.NewString()
	product.CreatedAt = time.Now()
	if product.Category == "" {
		product.Category = defaultCategory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = product
	r.order = append(r.order, product.ID)
	return product, nil
}
