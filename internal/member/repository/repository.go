package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/teamnine/humanofdelivery/backend/internal/member/domain"
)

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type Repository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (domain.Member, error)
	FindByID(ctx context.Context, id int64) (domain.Member, error)
	Create(ctx context.Context, member domain.Member) (domain.Member, error)
	Update(ctx context.Context, member domain.Member) (domain.Member, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const memberColumns = `user_id, name, email, password_hash, role, status, created_at, modified_at`

func (r *PgRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM members WHERE email = $1)`,
		email,
	)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.Member, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+memberColumns+` FROM members WHERE email = $1`,
		email,
	)

	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Member{}, ErrMemberNotFound
		}
		return domain.Member{}, fmt.Errorf("failed to find member by email: %w", err)
	}

	return member, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id int64) (domain.Member, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+memberColumns+` FROM members WHERE user_id = $1`,
		id,
	)

	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Member{}, ErrMemberNotFound
		}
		return domain.Member{}, fmt.Errorf("failed to find member by id: %w", err)
	}

	return member, nil
}

func (r *PgRepository) Create(ctx context.Context, member domain.Member) (domain.Member, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO members (name, email, password_hash, role, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING user_id, created_at, modified_at`,
		member.Name,
		member.Email,
		member.PasswordHash,
		string(member.Role),
		string(member.Status),
	)

	err := row.Scan(&member.ID, &member.CreatedAt, &member.ModifiedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Member{}, ErrEmailAlreadyExists
		}
		return domain.Member{}, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

func (r *PgRepository) Update(ctx context.Context, member domain.Member) (domain.Member, error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE members
		 SET name = $1, email = $2, password_hash = $3, status = $4, modified_at = now()
		 WHERE user_id = $5
		 RETURNING modified_at`,
		member.Name,
		member.Email,
		member.PasswordHash,
		string(member.Status),
		member.ID,
	)

	err := row.Scan(&member.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Member{}, ErrMemberNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Member{}, ErrEmailAlreadyExists
		}
		return domain.Member{}, fmt.Errorf("failed to update member: %w", err)
	}

	return member, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMember(row rowScanner) (domain.Member, error) {
	var m domain.Member
	var role, status string

	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash, &role, &status, &m.CreatedAt, &m.ModifiedAt)
	if err != nil {
		return domain.Member{}, err
	}

	m.Role = domain.Role(role)
	m.Status = domain.Status(status)
	return m, nil
}
