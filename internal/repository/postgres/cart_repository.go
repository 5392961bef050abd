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

type cartRepository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{db: pool, pool: pool}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		db:   tx,
		pool: nil, // use provided transaction instead
	}
}

const cartItemColumns = "id, session_id, product_id, size, quantity, created_at"

func (r *cartRepository) GetItems(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	if sessionID == "" {
		return nil, domain.ValidationError{Field: "sessionId", Reason: "is empty"}
	}

	rows, err := r.db.Query(ctx,
		"SELECT "+cartItemColumns+" FROM cart_items WHERE session_id = $1 ORDER BY created_at, id",
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanCartItem: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}
	return items, nil
}

func (r *cartRepository) AddItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	if item.SessionID == "" {
		return domain.CartItem{}, domain.ValidationError{Field: "sessionId", Reason: "is empty"}
	}
	if item.ProductID == "" {
		return domain.CartItem{}, domain.ValidationError{Field: "productId", Reason: "is empty"}
	}
	if item.Quantity < 1 {
		return domain.CartItem{}, domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO cart_items (id, session_id, product_id, size, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id, product_id, size)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING `+cartItemColumns,
		uuid.NewString(), item.SessionID, item.ProductID, item.Size, item.Quantity)

	stored, err := scanCartItem(row)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("scanCartItem: %w", err)
	}
	return stored, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) (domain.CartItem, bool, error) {
	type result struct {
		item    domain.CartItem
		removed bool
	}

	res, err := withTx(ctx, r.pool, r.db, func(db dbtx) (result, error) {
		row := db.QueryRow(ctx,
			"SELECT "+cartItemColumns+" FROM cart_items WHERE id = $1 FOR UPDATE", id)
		if _, err := scanCartItem(row); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return result{}, fmt.Errorf("cart item[%s]: %w", id, domain.ErrNotFound)
			}
			return result{}, fmt.Errorf("scanCartItem: %w", err)
		}

		if quantity <= 0 {
			if _, err := db.Exec(ctx, "DELETE FROM cart_items WHERE id = $1", id); err != nil {
				return result{}, fmt.Errorf("db.Exec: %w", err)
			}
			return result{removed: true}, nil
		}

		row = db.QueryRow(ctx,
			"UPDATE cart_items SET quantity = $2 WHERE id = $1 RETURNING "+cartItemColumns,
			id, quantity)
		item, err := scanCartItem(row)
		if err != nil {
			return result{}, fmt.Errorf("scanCartItem: %w", err)
		}
		return result{item: item}, nil
	})
	if err != nil {
		return domain.CartItem{}, false, err
	}
	return res.item, res.removed, nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM cart_items WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("db.Exec: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ValidationError{Field: "sessionId", Reason: "is empty"}
	}

	if _, err := r.db.Exec(ctx, "DELETE FROM cart_items WHERE session_id = $1", sessionID); err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}
	return nil
}

func scanCartItem(row pgx.Row) (domain.CartItem, error) {
	var item domain.CartItem
	err := row.Scan(&item.ID, &item.SessionID, &item.ProductID, &item.Size, &item.Quantity, &item.CreatedAt)
	if err != nil {
		return domain.CartItem{}, err
	}
	return item, nil
}
