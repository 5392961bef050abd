package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/wuwei-shop/storefront/internal/domain"
	"github.com/wuwei-shop/storefront/internal/port"
)

type orderRepository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewOrders(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{db: pool, pool: pool}
}

func NewOrdersWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		db:   tx,
		pool: nil, // use provided transaction instead
	}
}

const orderColumns = "id, email, payment_ref, total::text, currency, items, status, created_at"

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.Email == "" {
		return domain.Order{}, domain.ValidationError{Field: "email", Reason: "is empty"}
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO orders (id, email, payment_ref, total, currency, items, status)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
		RETURNING `+orderColumns,
		uuid.NewString(), order.Email, order.PaymentRef,
		order.Total.Amount.StringFixed(2), order.Total.Currency.String(),
		order.Items, string(order.Status))

	stored, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, fmt.Errorf("scanOrder: %w", err)
	}
	return stored, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if id == "" {
		return domain.Order{}, domain.ValidationError{Field: "orderId", Reason: "is empty"}
	}

	row := r.db.QueryRow(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("order[%s]: %w", id, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("scanOrder: %w", err)
	}
	return order, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o           domain.Order
		total, curr string
		status      string
	)
	err := row.Scan(&o.ID, &o.Email, &o.PaymentRef, &total, &curr, &o.Items, &status, &o.CreatedAt)
	if err != nil {
		return domain.Order{}, err
	}

	amount, err := decimal.NewFromString(total)
	if err != nil {
		return domain.Order{}, fmt.Errorf("total[%s] is not a valid decimal: %w", total, err)
	}

	parsedCurrency, err := currency.ParseISO(curr)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", curr, err)
	}

	o.Total = domain.Money{Amount: amount, Currency: parsedCurrency}
	o.Status = domain.OrderStatus(status)
	return o, nil
}
