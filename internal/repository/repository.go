package repository

import (
	"context"
	"encoding/json"
	"math"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
)

// Page 分页与排序参数（page 从 0 开始，与前端 ?page=0&size=20&sort=id,asc 一致）
type Page struct {
	Page int
	Size int // <= 0 表示不分页，返回全部
	Sort string
	Desc bool
}

// Offset returns the row offset for a paged query, saturating at math.MaxInt.
func (p Page) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// EntityRepository 单个实体表的数据访问
// Get/Update 在记录不存在时返回包装了 domain.ErrNotFound 的错误；Delete 对不存在的 id 不报错
type EntityRepository[T domain.Entity[T]] interface {
	List(ctx context.Context, page Page) (items []T, total int, err error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, v T) (T, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

// AuthorityRepository authority 以 name 为主键，没有更新操作
type AuthorityRepository interface {
	List(ctx context.Context, page Page) ([]domain.Authority, int, error)
	Get(ctx context.Context, name string) (domain.Authority, error)
	Create(ctx context.Context, a domain.Authority) (domain.Authority, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}

// cloneJSON copies v through its JSON form so callers never share slices or pointers with stored rows.
func cloneJSON[T any](v T) T {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
