package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
)

// MemoryRepo: 用于 DB 未就绪时的联调
// - ID 自增（从 1 开始），与 BIGSERIAL 行为一致
// - 仅支持按 id 排序
// - 唯一键（WithUnique）对应表上的 UNIQUE 约束
type MemoryRepo[T domain.Entity[T]] struct {
	mu     sync.RWMutex
	entity string
	nextID int64
	rows   map[int64]T
	unique []UniqueKey[T]
}

// UniqueKey 唯一列：冲突时返回 ErrorKey 对应的 BadRequestError
type UniqueKey[T any] struct {
	ErrorKey string
	Message  string
	Value    func(v T) string
}

func NewMemoryRepo[T domain.Entity[T]](entity string) *MemoryRepo[T] {
	return &MemoryRepo[T]{entity: entity, rows: map[int64]T{}}
}

func (r *MemoryRepo[T]) WithUnique(keys ...UniqueKey[T]) *MemoryRepo[T] {
	r.unique = append(r.unique, keys...)
	return r
}

// checkUnique 调用方持有写锁
func (r *MemoryRepo[T]) checkUnique(v T) error {
	for _, k := range r.unique {
		want := k.Value(v)
		for id, row := range r.rows {
			if id != v.EntityID() && k.Value(row) == want {
				return domain.NewBadRequest(r.entity, k.ErrorKey, k.Message)
			}
		}
	}
	return nil
}

var _ EntityRepository[domain.Job] = (*MemoryRepo[domain.Job])(nil)

func (r *MemoryRepo[T]) List(_ context.Context, page Page) ([]T, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if page.Desc {
			return ids[i] > ids[j]
		}
		return ids[i] < ids[j]
	})

	total := len(ids)
	if page.Size > 0 {
		start := min(page.Offset(), total)
		end := min(start+page.Size, total)
		ids = ids[start:end]
	}

	items := make([]T, 0, len(ids))
	for _, id := range ids {
		items = append(items, cloneJSON(r.rows[id]))
	}
	return items, total, nil
}

func (r *MemoryRepo[T]) Get(_ context.Context, id int64) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.rows[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s not found: id=%d: %w", r.entity, id, domain.ErrNotFound)
	}
	return cloneJSON(v), nil
}

func (r *MemoryRepo[T]) Create(_ context.Context, v T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(v.WithID(0)); err != nil {
		var zero T
		return zero, err
	}
	r.nextID++
	v = cloneJSON(v).WithID(r.nextID)
	r.rows[r.nextID] = v
	return cloneJSON(v), nil
}

func (r *MemoryRepo[T]) Update(_ context.Context, v T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := v.EntityID()
	if _, ok := r.rows[id]; !ok {
		var zero T
		return zero, fmt.Errorf("%s not found: id=%d: %w", r.entity, id, domain.ErrNotFound)
	}
	if err := r.checkUnique(v); err != nil {
		var zero T
		return zero, err
	}
	r.rows[id] = cloneJSON(v)
	return cloneJSON(v), nil
}

func (r *MemoryRepo[T]) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *MemoryRepo[T]) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rows[id]
	return ok, nil
}

func (r *MemoryRepo[T]) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows), nil
}

// MemoryAuthorityRepo 内存版 authority（按 name 排序），预置 ROLE_ADMIN / ROLE_USER
type MemoryAuthorityRepo struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

func NewMemoryAuthorityRepo() *MemoryAuthorityRepo {
	return &MemoryAuthorityRepo{names: map[string]struct{}{
		"ROLE_ADMIN": {},
		"ROLE_USER":  {},
	}}
}

var _ AuthorityRepository = (*MemoryAuthorityRepo)(nil)

func (r *MemoryAuthorityRepo) List(_ context.Context, page Page) ([]domain.Authority, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.names))
	for n := range r.names {
		names = append(names, n)
	}
	sort.Strings(names)
	if page.Desc {
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	}

	total := len(names)
	if page.Size > 0 {
		start := min(page.Offset(), total)
		end := min(start+page.Size, total)
		names = names[start:end]
	}
	out := make([]domain.Authority, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Authority{Name: n})
	}
	return out, total, nil
}

func (r *MemoryAuthorityRepo) Get(_ context.Context, name string) (domain.Authority, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.names[name]; !ok {
		return domain.Authority{}, fmt.Errorf("authority not found: name=%s: %w", name, domain.ErrNotFound)
	}
	return domain.Authority{Name: name}, nil
}

func (r *MemoryAuthorityRepo) Create(_ context.Context, a domain.Authority) (domain.Authority, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[a.Name] = struct{}{}
	return a, nil
}

func (r *MemoryAuthorityRepo) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.names, name)
	return nil
}

func (r *MemoryAuthorityRepo) Exists(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[name]
	return ok, nil
}
