package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Table 描述一张实体表：列、取值、扫描与关联表读写
type Table[T domain.Entity[T]] struct {
	Name    string
	Entity  string
	Columns []string // 不含 id
	Values  func(v T) []any
	// Scan 按 id + Columns 的顺序扫描一行
	Scan func(scan func(dest ...any) error) (T, error)
	// Sortable 前端排序字段 -> 列名
	Sortable map[string]string
	// Unique 唯一约束名 -> 冲突时的错误
	Unique map[string]UniqueKey[T]

	SaveRelations func(ctx context.Context, tx execer, v T) error
	LoadRelations func(ctx context.Context, q queryer, items []T) error
}

// PostgresRepo 通用实体 Repository（显式 SQL）
type PostgresRepo[T domain.Entity[T]] struct {
	db *sql.DB
	t  Table[T]
}

func NewPostgresRepo[T domain.Entity[T]](db *sql.DB, t Table[T]) *PostgresRepo[T] {
	return &PostgresRepo[T]{db: db, t: t}
}

var _ EntityRepository[domain.Region] = (*PostgresRepo[domain.Region])(nil)

func (r *PostgresRepo[T]) selectList() string {
	return "id, " + strings.Join(r.t.Columns, ", ")
}

func (r *PostgresRepo[T]) List(ctx context.Context, page Page) ([]T, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+r.t.Name).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", r.t.Name, err)
	}

	dir := "ASC"
	if page.Desc {
		dir = "DESC"
	}
	order := "id " + dir
	if col, ok := r.t.Sortable[page.Sort]; ok && col != "id" {
		order = col + " " + dir + ", id ASC"
	}

	query := `SELECT ` + r.selectList() + ` FROM ` + r.t.Name + ` ORDER BY ` + order
	var args []any
	if page.Size > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, page.Size, page.Offset())
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query %s: %w", r.t.Name, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		v, err := r.t.Scan(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan %s: %w", r.t.Name, err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	if r.t.LoadRelations != nil && len(items) > 0 {
		if err := r.t.LoadRelations(ctx, r.db, items); err != nil {
			return nil, 0, err
		}
	}
	return items, total, nil
}

func (r *PostgresRepo[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	query := `SELECT ` + r.selectList() + ` FROM ` + r.t.Name + ` WHERE id = $1`
	v, err := r.t.Scan(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, fmt.Errorf("%s not found: id=%d: %w", r.t.Entity, id, domain.ErrNotFound)
		}
		return zero, fmt.Errorf("failed to query %s: %w", r.t.Name, err)
	}

	if r.t.LoadRelations != nil {
		items := []T{v}
		if err := r.t.LoadRelations(ctx, r.db, items); err != nil {
			return zero, err
		}
		v = items[0]
	}
	return v, nil
}

func (r *PostgresRepo[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING id`,
		r.t.Name, strings.Join(r.t.Columns, ", "), placeholders(1, len(r.t.Columns)))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	if err := tx.QueryRowContext(ctx, query, r.t.Values(v)...).Scan(&id); err != nil {
		if bre := r.conflict(err); bre != nil {
			return zero, bre
		}
		return zero, fmt.Errorf("failed to insert %s: %w", r.t.Name, err)
	}
	v = v.WithID(id)

	if r.t.SaveRelations != nil {
		if err := r.t.SaveRelations(ctx, tx, v); err != nil {
			return zero, err
		}
	}
	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *PostgresRepo[T]) Update(ctx context.Context, v T) (T, error) {
	var zero T
	sets := make([]string, len(r.t.Columns))
	for i, c := range r.t.Columns {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`, r.t.Name, strings.Join(sets, ", "), len(r.t.Columns)+1)
	args := append(r.t.Values(v), v.EntityID())

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if bre := r.conflict(err); bre != nil {
			return zero, bre
		}
		return zero, fmt.Errorf("failed to update %s: %w", r.t.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return zero, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return zero, fmt.Errorf("%s not found: id=%d: %w", r.t.Entity, v.EntityID(), domain.ErrNotFound)
	}

	if r.t.SaveRelations != nil {
		if err := r.t.SaveRelations(ctx, tx, v); err != nil {
			return zero, err
		}
	}
	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return r.Get(ctx, v.EntityID())
}

func (r *PostgresRepo[T]) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM `+r.t.Name+` WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.t.Name, err)
	}
	return nil
}

func (r *PostgresRepo[T]) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM `+r.t.Name+` WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", r.t.Name, err)
	}
	return exists, nil
}

func (r *PostgresRepo[T]) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+r.t.Name).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.t.Name, err)
	}
	return n, nil
}

// conflict 把唯一约束冲突（23505）转成 BadRequestError，其它错误返回 nil
func (r *PostgresRepo[T]) conflict(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return nil
	}
	if k, ok := r.t.Unique[pqErr.Constraint]; ok {
		return domain.NewBadRequest(r.t.Entity, k.ErrorKey, k.Message)
	}
	return domain.NewBadRequest(r.t.Entity, "duplicate", pqErr.Message)
}

// placeholders returns "$from, $from+1, ..." for n columns.
func placeholders(from, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ph, ", ")
}

// ---- NULL 转换 ----

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return p.UTC()
}

func nullRef(r *domain.Ref) any {
	if r == nil || r.ID == 0 {
		return nil
	}
	return r.ID
}

func intPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	v := n.Time
	return &v
}

func refFrom(n sql.NullInt64) *domain.Ref {
	if !n.Valid {
		return nil
	}
	return &domain.Ref{ID: n.Int64}
}
