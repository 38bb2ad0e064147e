package repository

import (
	"context"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/teamnine/humanofdelivery/backend/internal/store/domain"
)

var ErrStoreNotFound = errors.New("store not found")

type Repository interface {
	Create(ctx context.Context, store domain.Store) (domain.Store, error)
	FindByID(ctx context.Context, id int64) (domain.Store, error)
	FindAll(ctx context.Context) ([]domain.Store, error)
	FindAllByOwnerID(ctx context.Context, ownerID int64) ([]domain.Store, error)
	CountActiveByOwnerID(ctx context.Context, ownerID int64) (int64, error)
	Update(ctx context.Context, store domain.Store) (domain.Store, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const storeColumns = `id, name, status, owner_id, created_at, modified_at`

func (r *PgRepository) Create(ctx context.Context, store domain.Store) (domain.Store, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO stores (name, status, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, modified_at`,
		store.Name,
		string(store.Status),
		store.OwnerID,
	)

	if err := row.Scan(&store.ID, &store.CreatedAt, &store.ModifiedAt); err != nil {
		return domain.Store{}, fmt.Errorf("failed to create store: %w", err)
	}

	return store, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.Store, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+storeColumns+` FROM stores WHERE id = $1`,
		id,
	)

	store, err := scanStore(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Store{}, ErrStoreNotFound
		}
		return domain.Store{}, fmt.Errorf("failed to find store by id: %w", err)
	}

	return store, nil
}

func (r *PgRepository) FindAll(ctx context.Context) ([]domain.Store, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+storeColumns+` FROM stores ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	return collectStores(rows)
}

func (r *PgRepository) FindAllByOwnerID(ctx context.Context, ownerID int64) ([]domain.Store, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+storeColumns+` FROM stores WHERE owner_id = $1 ORDER BY id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores by owner: %w", err)
	}
	defer rows.Close()

	return collectStores(rows)
}

func (r *PgRepository) CountActiveByOwnerID(ctx context.Context, ownerID int64) (int64, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM stores WHERE owner_id = $1 AND status = $2`,
		ownerID,
		string(domain.StatusOpen),
	)

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active stores: %w", err)
	}

	return count, nil
}

func (r *PgRepository) Update(ctx context.Context, store domain.Store) (domain.Store, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE stores
		 SET name = $1, status = $2, modified_at = now()
		 WHERE id = $3
		 RETURNING modified_at`,
		store.Name,
		string(store.Status),
		store.ID,
	)

	if err := row.Scan(&store.ModifiedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Store{}, ErrStoreNotFound
		}
		return domain.Store{}, fmt.Errorf("failed to update store: %w", err)
	}

	return store, nil
}

func collectStores(rows pgx.Rows) ([]domain.Store, error) {
	var stores []domain.Store
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, store)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return stores, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStore(row rowScanner) (domain.Store, error) {
	var s domain.Store
	var status string

	err := row.Scan(&s.ID, &s.Name, &status, &s.OwnerID, &s.CreatedAt, &s.ModifiedAt)
	if err != nil {
		return domain.Store{}, err
	}

	s.Status = domain.Status(status)
	return s, nil
}
