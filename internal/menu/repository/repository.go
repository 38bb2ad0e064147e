package repository

import (
	"context"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/teamnine/humanofdelivery/backend/internal/menu/domain"
)

var ErrMenuNotFound = errors.New("menu not found")

type Repository interface {
	Create(ctx context.Context, menu domain.Menu) (domain.Menu, error)
	FindByID(ctx context.Context, id int64) (domain.Menu, error)
	FindAllByStoreID(ctx context.Context, storeID int64) ([]domain.Menu, error)
	Update(ctx context.Context, menu domain.Menu) (domain.Menu, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const menuColumns = `id, store_id, name, price, status, created_at, modified_at`

func (r *PgRepository) Create(ctx context.Context, menu domain.Menu) (domain.Menu, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO menus (store_id, name, price, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, modified_at`,
		menu.StoreID,
		menu.Name,
		menu.Price,
		string(menu.Status),
	)

	if err := row.Scan(&menu.ID, &menu.CreatedAt, &menu.ModifiedAt); err != nil {
		return domain.Menu{}, fmt.Errorf("failed to create menu: %w", err)
	}

	return menu, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.Menu, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+menuColumns+` FROM menus WHERE id = $1`,
		id,
	)

	menu, err := scanMenu(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Menu{}, ErrMenuNotFound
		}
		return domain.Menu{}, fmt.Errorf("failed to find menu by id: %w", err)
	}

	return menu, nil
}

func (r *PgRepository) FindAllByStoreID(ctx context.Context, storeID int64) ([]domain.Menu, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+menuColumns+` FROM menus
		 WHERE store_id = $1 AND status <> $2
		 ORDER BY id ASC`,
		storeID,
		string(domain.StatusDeleted),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	var menus []domain.Menu
	for rows.Next() {
		menu, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, menu)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return menus, nil
}

func (r *PgRepository) Update(ctx context.Context, menu domain.Menu) (domain.Menu, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE menus
		 SET name = $1, price = $2, status = $3, modified_at = now()
		 WHERE id = $4
		 RETURNING modified_at`,
		menu.Name,
		menu.Price,
		string(menu.Status),
		menu.ID,
	)

	if err := row.Scan(&menu.ModifiedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Menu{}, ErrMenuNotFound
		}
		return domain.Menu{}, fmt.Errorf("failed to update menu: %w", err)
	}

	return menu, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMenu(row rowScanner) (domain.Menu, error) {
	var m domain.Menu
	var status string

	err := row.Scan(&m.ID, &m.StoreID, &m.Name, &m.Price, &status, &m.CreatedAt, &m.ModifiedAt)
	if err != nil {
		return domain.Menu{}, err
	}

	m.Status = domain.Status(status)
	return m, nil
}
