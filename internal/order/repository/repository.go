package repository

import (
	"context"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/teamnine/humanofdelivery/backend/internal/order/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id int64) (domain.Order, error)
	FindAllByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (domain.Order, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const orderColumns = `id, store_id, user_id, menu_name, status, created_at, modified_at`

func (r *PgRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO orders (store_id, user_id, menu_name, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, modified_at`,
		order.StoreID,
		order.UserID,
		order.MenuName,
		string(order.Status),
	)

	if err := row.Scan(&order.ID, &order.CreatedAt, &order.ModifiedAt); err != nil {
		return domain.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.Order, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`,
		id,
	)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to find order by id: %w", err)
	}

	return order, nil
}

func (r *PgRepository) FindAllByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return orders, nil
}

func (r *PgRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) (domain.Order, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE orders SET status = $1, modified_at = now() WHERE id = $2
		 RETURNING `+orderColumns,
		string(status),
		id,
	)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var o domain.Order
	var status string

	err := row.Scan(&o.ID, &o.StoreID, &o.UserID, &o.MenuName, &status, &o.CreatedAt, &o.ModifiedAt)
	if err != nil {
		return domain.Order{}, err
	}

	o.Status = domain.Status(status)
	return o, nil
}
