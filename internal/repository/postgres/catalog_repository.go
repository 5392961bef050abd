package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wuwei-shop/storefront/internal/domain"
	"github.com/wuwei-shop/storefront/internal/port"
)

type catalogRepository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) port.CatalogRepository {
	return &catalogRepository{db: pool, pool: pool}
}

const productColumns = "id, name, description, price::text, image, sizes, in_stock, category, featured, created_at"

func (r *catalogRepository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, domain.ValidationError{Field: "productId", Reason: "is empty"}
	}

	row := r.db.QueryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product[%s]: %w", id, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("scanProduct: %w", err)
	}
	return product, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_at, id")
}

func (r *catalogRepository) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, "SELECT "+productColumns+" FROM products WHERE featured ORDER BY created_at, id")
}

func (r *catalogRepository) list(ctx context.Context, query string) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return products, nil
}

func (r *catalogRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
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
	if product.Category == "" {
		product.Category = "kimono"
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price, image, sizes, in_stock, category, featured)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9)
		RETURNING `+productColumns,
		uuid.NewString(), product.Name, product.Description, product.Price,
		product.Image, product.Sizes, product.InStock, product.Category, product.Featured)

	stored, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("scanProduct: %w", err)
	}
	return stored, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image,
		&p.Sizes, &p.InStock, &p.Category, &p.Featured, &p.CreatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
