package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
)

// PostgresAuthorityRepository hr_authority 表
type PostgresAuthorityRepository struct {
	db *sql.DB
}

func NewPostgresAuthorityRepository(db *sql.DB) *PostgresAuthorityRepository {
	return &PostgresAuthorityRepository{db: db}
}

var _ AuthorityRepository = (*PostgresAuthorityRepository)(nil)

func (r *PostgresAuthorityRepository) List(ctx context.Context, page Page) ([]domain.Authority, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hr_authority`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authorities: %w", err)
	}

	query := `SELECT name FROM hr_authority ORDER BY name ASC`
	if page.Desc {
		query = `SELECT name FROM hr_authority ORDER BY name DESC`
	}
	var args []any
	if page.Size > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, page.Size, page.Offset())
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query authorities: %w", err)
	}
	defer rows.Close()

	out := []domain.Authority{}
	for rows.Next() {
		var a domain.Authority
		if err := rows.Scan(&a.Name); err != nil {
			return nil, 0, fmt.Errorf("failed to scan authority: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return out, total, nil
}

func (r *PostgresAuthorityRepository) Get(ctx context.Context, name string) (domain.Authority, error) {
	var a domain.Authority
	err := r.db.QueryRowContext(ctx, `SELECT name FROM hr_authority WHERE name = $1`, name).Scan(&a.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, fmt.Errorf("authority not found: name=%s: %w", name, domain.ErrNotFound)
		}
		return a, fmt.Errorf("failed to query authority: %w", err)
	}
	return a, nil
}

func (r *PostgresAuthorityRepository) Create(ctx context.Context, a domain.Authority) (domain.Authority, error) {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO hr_authority (name) VALUES ($1)`, a.Name); err != nil {
		return domain.Authority{}, fmt.Errorf("failed to insert authority: %w", err)
	}
	return a, nil
}

func (r *PostgresAuthorityRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM hr_authority WHERE name = $1`, name); err != nil {
		return fmt.Errorf("failed to delete authority: %w", err)
	}
	return nil
}

func (r *PostgresAuthorityRepository) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM hr_authority WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check authority: %w", err)
	}
	return exists, nil
}
