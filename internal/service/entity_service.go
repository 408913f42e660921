package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
	"github.com/tuannt39-study/jhipster-sample/internal/events"
	"github.com/tuannt39-study/jhipster-sample/internal/repository"
	"github.com/tuannt39-study/jhipster-sample/internal/search"
	"github.com/tuannt39-study/jhipster-sample/internal/store"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Options 各实体服务共享的基础设施；KV / Publisher 为空时对应功能关闭
type Options struct {
	Index     *search.Index
	KV        store.KV
	CacheTTL  time.Duration
	Publisher events.Publisher
	Validate  *validator.Validate
	Logger    *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Publisher == nil {
		o.Publisher = events.Nop{}
	}
	if o.Validate == nil {
		o.Validate = validator.New()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = 5 * time.Minute
	}
	return o
}

// EntityService 单个实体的 CRUD + 检索
// 写操作成功后：同步检索索引、失效缓存、发布变更事件（后两者失败只记日志）
type EntityService[T domain.Entity[T]] struct {
	entity   string
	resource string
	repo     repository.EntityRepository[T]
	index    *search.Index
	cache    *store.EntityCache[T]
	pub      events.Publisher
	validate *validator.Validate
	logger   *zap.Logger

	// dependents 缓存里内嵌了本实体（关联 id、task 标题）的其它实体，本实体更新/删除后整体清空
	dependents []CacheFlusher
}

// CacheFlusher 可整体清空读缓存的服务
type CacheFlusher interface {
	FlushCache(ctx context.Context)
}

func NewEntityService[T domain.Entity[T]](entity, resource string, repo repository.EntityRepository[T], opts Options) *EntityService[T] {
	opts = opts.withDefaults()
	s := &EntityService[T]{
		entity:   entity,
		resource: resource,
		repo:     repo,
		index:    opts.Index,
		pub:      opts.Publisher,
		validate: opts.Validate,
		logger:   opts.Logger.With(zap.String("entity", entity)),
	}
	if opts.KV != nil {
		s.cache = store.NewEntityCache[T](opts.KV, resource, opts.CacheTTL)
	}
	return s
}

func (s *EntityService[T]) Entity() string   { return s.entity }
func (s *EntityService[T]) Resource() string { return s.resource }
func (s *EntityService[T]) Searchable() bool { return s.index != nil }

// InvalidateOnWrite 注册依赖本实体的服务
func (s *EntityService[T]) InvalidateOnWrite(deps ...CacheFlusher) {
	s.dependents = append(s.dependents, deps...)
}

func (s *EntityService[T]) FlushCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Flush(ctx); err != nil {
		s.logger.Warn("cache flush failed", zap.Error(err))
	}
}

func (s *EntityService[T]) List(ctx context.Context, page repository.Page) ([]T, int, error) {
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", s.resource, err)
	}
	return items, total, nil
}

func (s *EntityService[T]) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *EntityService[T]) Get(ctx context.Context, id int64) (T, error) {
	key := strconv.FormatInt(id, 10)
	if s.cache != nil {
		v, err := s.cache.Get(ctx, key)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, store.ErrMiss) {
			s.logger.Warn("cache read failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return v, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, v); err != nil {
			s.logger.Warn("cache write failed", zap.Int64("id", id), zap.Error(err))
		}
	}
	return v, nil
}

// Create 新建实体；请求体带 id 时拒绝（idexists）
func (s *EntityService[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	if v.EntityID() != 0 {
		return zero, domain.NewBadRequest(s.entity, "idexists", "A new "+s.entity+" cannot already have an ID")
	}
	if err := s.check(v); err != nil {
		return zero, err
	}

	created, err := s.repo.Create(ctx, v)
	if err != nil {
		return zero, fmt.Errorf("failed to create %s: %w", s.entity, err)
	}
	s.logger.Info("entity created", zap.Int64("id", created.EntityID()))
	s.afterSave(ctx, created, events.ActionCreated)
	return created, nil
}

// Update 整体替换（PUT）
func (s *EntityService[T]) Update(ctx context.Context, pathID int64, v T) (T, error) {
	var zero T
	if err := s.checkID(ctx, pathID, v.EntityID()); err != nil {
		return zero, err
	}
	if err := s.check(v); err != nil {
		return zero, err
	}

	updated, err := s.repo.Update(ctx, v)
	if err != nil {
		return zero, fmt.Errorf("failed to update %s: %w", s.entity, err)
	}
	s.logger.Info("entity updated", zap.Int64("id", updated.EntityID()))
	s.afterSave(ctx, updated, events.ActionUpdated)
	return updated, nil
}

// PartialUpdate 合并更新（PATCH, application/merge-patch+json）
// 只覆盖请求体中非 null 的字段
func (s *EntityService[T]) PartialUpdate(ctx context.Context, pathID int64, patch []byte) (T, error) {
	var zero T
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return zero, fmt.Errorf("%w: invalid merge patch: %v", domain.ErrValidation, err)
	}
	var bodyID int64
	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &bodyID); err != nil {
			return zero, fmt.Errorf("%w: invalid id: %v", domain.ErrValidation, err)
		}
	}
	if err := s.checkID(ctx, pathID, bodyID); err != nil {
		return zero, err
	}

	for k, raw := range fields {
		if string(raw) == "null" {
			delete(fields, k)
		}
	}
	cleaned, err := json.Marshal(fields)
	if err != nil {
		return zero, err
	}

	existing, err := s.repo.Get(ctx, pathID)
	if err != nil {
		return zero, err
	}
	original, err := json.Marshal(existing)
	if err != nil {
		return zero, err
	}
	merged, err := jsonpatch.MergePatch(original, cleaned)
	if err != nil {
		return zero, fmt.Errorf("%w: failed to apply merge patch: %v", domain.ErrValidation, err)
	}
	var v T
	if err := json.Unmarshal(merged, &v); err != nil {
		return zero, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.check(v); err != nil {
		return zero, err
	}

	updated, err := s.repo.Update(ctx, v)
	if err != nil {
		return zero, fmt.Errorf("failed to update %s: %w", s.entity, err)
	}
	s.logger.Info("entity patched", zap.Int64("id", updated.EntityID()))
	s.afterSave(ctx, updated, events.ActionUpdated)
	return updated, nil
}

func (s *EntityService[T]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.entity, err)
	}
	s.logger.Info("entity deleted", zap.Int64("id", id))

	key := strconv.FormatInt(id, 10)
	if s.index != nil {
		s.index.Remove(s.resource, id)
	}
	s.invalidate(ctx, key)
	flushDependents(ctx, s.dependents)
	s.publish(ctx, events.ActionDeleted, key)
	return nil
}

// Search 检索索引，再按命中顺序回表取实体（已不存在的跳过）
func (s *EntityService[T]) Search(ctx context.Context, query string) ([]T, error) {
	if s.index == nil {
		return nil, domain.NewBadRequest(s.entity, "searchunsupported", s.resource+" cannot be searched")
	}
	ids := s.index.Search(s.resource, query)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		v, err := s.repo.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Reindex 全量重建检索索引，返回文档数
func (s *EntityService[T]) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, nil
	}
	items, _, err := s.repo.List(ctx, repository.Page{})
	if err != nil {
		return 0, fmt.Errorf("failed to load %s for reindex: %w", s.resource, err)
	}
	s.index.Reset(s.resource)
	for _, v := range items {
		if err := s.index.Put(s.resource, v.EntityID(), v); err != nil {
			return 0, err
		}
	}
	s.FlushCache(ctx)
	return len(items), nil
}

func (s *EntityService[T]) check(v T) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrValidation, s.entity, err)
	}
	return nil
}

// checkID 校验 PUT/PATCH 的 id：body 必须带 id（idnull）、与路径一致（idinvalid）、且存在（idnotfound）
func (s *EntityService[T]) checkID(ctx context.Context, pathID, bodyID int64) error {
	if bodyID == 0 {
		return domain.NewBadRequest(s.entity, "idnull", "Invalid id")
	}
	if bodyID != pathID {
		return domain.NewBadRequest(s.entity, "idinvalid", "Invalid ID")
	}
	ok, err := s.repo.Exists(ctx, pathID)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", s.entity, err)
	}
	if !ok {
		return domain.NewBadRequest(s.entity, "idnotfound", "Entity not found")
	}
	return nil
}

func (s *EntityService[T]) afterSave(ctx context.Context, v T, action events.Action) {
	key := strconv.FormatInt(v.EntityID(), 10)
	if s.index != nil {
		if err := s.index.Put(s.resource, v.EntityID(), v); err != nil {
			s.logger.Warn("index update failed", zap.Int64("id", v.EntityID()), zap.Error(err))
		}
	}
	s.invalidate(ctx, key)
	if action != events.ActionCreated {
		flushDependents(ctx, s.dependents)
	}
	s.publish(ctx, action, key)
}

func flushDependents(ctx context.Context, deps []CacheFlusher) {
	for _, d := range deps {
		d.FlushCache(ctx)
	}
}

func (s *EntityService[T]) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("id", key), zap.Error(err))
	}
}

func (s *EntityService[T]) publish(ctx context.Context, action events.Action, id string) {
	if err := s.pub.Publish(ctx, events.NewEvent(s.entity, action, id)); err != nil {
		s.logger.Warn("event publish failed", zap.String("action", string(action)), zap.String("id", id), zap.Error(err))
	}
}
