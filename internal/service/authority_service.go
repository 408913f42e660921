package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
	"github.com/tuannt39-study/jhipster-sample/internal/events"
	"github.com/tuannt39-study/jhipster-sample/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AuthorityService 权限服务（name 为主键，不支持更新）
type AuthorityService struct {
	repo     repository.AuthorityRepository
	pub      events.Publisher
	validate *validator.Validate
	logger   *zap.Logger

	dependents []CacheFlusher
}

func NewAuthorityService(repo repository.AuthorityRepository, opts Options) *AuthorityService {
	opts = opts.withDefaults()
	return &AuthorityService{
		repo:     repo,
		pub:      opts.Publisher,
		validate: opts.Validate,
		logger:   opts.Logger.With(zap.String("entity", "authority")),
	}
}

// InvalidateOnWrite 删除权限会级联删除 user 的授权，user 缓存随之清空
func (s *AuthorityService) InvalidateOnWrite(deps ...CacheFlusher) {
	s.dependents = append(s.dependents, deps...)
}

func (s *AuthorityService) List(ctx context.Context, page repository.Page) ([]domain.Authority, int, error) {
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authorities: %w", err)
	}
	return items, total, nil
}

func (s *AuthorityService) Get(ctx context.Context, name string) (domain.Authority, error) {
	return s.repo.Get(ctx, name)
}

// Create 新建权限；同名已存在时拒绝（idexists）
func (s *AuthorityService) Create(ctx context.Context, a domain.Authority) (domain.Authority, error) {
	a.Name = strings.TrimSpace(a.Name)
	if err := s.validate.Struct(a); err != nil {
		return domain.Authority{}, fmt.Errorf("%w: authority: %v", domain.ErrValidation, err)
	}
	exists, err := s.repo.Exists(ctx, a.Name)
	if err != nil {
		return domain.Authority{}, fmt.Errorf("failed to check authority: %w", err)
	}
	if exists {
		return domain.Authority{}, domain.NewBadRequest("authority", "idexists", "authority already exists")
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return domain.Authority{}, fmt.Errorf("failed to create authority: %w", err)
	}
	s.logger.Info("authority created", zap.String("name", created.Name))
	s.publish(ctx, events.ActionCreated, created.Name)
	return created, nil
}

func (s *AuthorityService) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete authority: %w", err)
	}
	s.logger.Info("authority deleted", zap.String("name", name))
	flushDependents(ctx, s.dependents)
	s.publish(ctx, events.ActionDeleted, name)
	return nil
}

func (s *AuthorityService) publish(ctx context.Context, action events.Action, name string) {
	if err := s.pub.Publish(ctx, events.NewEvent("authority", action, name)); err != nil {
		s.logger.Warn("event publish failed", zap.String("name", name), zap.Error(err))
	}
}
