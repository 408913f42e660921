package service

import (
	"context"

	"github.com/tuannt39-study/jhipster-sample/internal/domain"
	"github.com/tuannt39-study/jhipster-sample/internal/repository"

	"go.uber.org/zap"
)

// Services 所有实体服务
type Services struct {
	Regions      *EntityService[domain.Region]
	Countries    *EntityService[domain.Country]
	Locations    *EntityService[domain.Location]
	Departments  *EntityService[domain.Department]
	Tasks        *EntityService[domain.Task]
	Employees    *EntityService[domain.Employee]
	Jobs         *EntityService[domain.Job]
	JobHistories *EntityService[domain.JobHistory]
	Users        *EntityService[domain.User]
	Authorities  *AuthorityService

	logger *zap.Logger
}

func NewServices(repos *repository.Set, opts Options) *Services {
	opts = opts.withDefaults()
	s := &Services{
		Regions:      NewEntityService("region", "regions", repos.Regions, opts),
		Countries:    NewEntityService("country", "countries", repos.Countries, opts),
		Locations:    NewEntityService("location", "locations", repos.Locations, opts),
		Departments:  NewEntityService("department", "departments", repos.Departments, opts),
		Tasks:        NewEntityService("task", "tasks", repos.Tasks, opts),
		Employees:    NewEntityService("employee", "employees", repos.Employees, opts),
		Jobs:         NewEntityService("job", "jobs", repos.Jobs, opts),
		JobHistories: NewEntityService("jobHistory", "job-histories", repos.JobHistories, opts),
		Users:        NewEntityService("user", "users", repos.Users, opts),
		Authorities:  NewAuthorityService(repos.Authorities, opts),
		logger:       opts.Logger,
	}
	s.wireCacheDependents()
	return s
}

// wireCacheDependents 外键与内嵌字段的反向关系：被引用方写入后清空引用方的缓存
// （Postgres 的 ON DELETE SET NULL / CASCADE 会改动引用方的行）
func (s *Services) wireCacheDependents() {
	s.Regions.InvalidateOnWrite(s.Countries)
	s.Countries.InvalidateOnWrite(s.Locations)
	s.Locations.InvalidateOnWrite(s.Departments)
	s.Departments.InvalidateOnWrite(s.Employees, s.JobHistories)
	s.Tasks.InvalidateOnWrite(s.Jobs)
	s.Employees.InvalidateOnWrite(s.Employees, s.Jobs, s.JobHistories)
	s.Jobs.InvalidateOnWrite(s.JobHistories)
	s.Authorities.InvalidateOnWrite(s.Users)
}

type reindexer interface {
	Resource() string
	Reindex(ctx context.Context) (int, error)
}

// Reindex 启动时同步重建所有检索索引
func (s *Services) Reindex(ctx context.Context) error {
	all := []reindexer{
		s.Regions, s.Countries, s.Locations, s.Departments, s.Tasks,
		s.Employees, s.Jobs, s.JobHistories, s.Users,
	}
	for _, r := range all {
		n, err := r.Reindex(ctx)
		if err != nil {
			return err
		}
		s.logger.Info("search index rebuilt", zap.String("resource", r.Resource()), zap.Int("documents", n))
	}
	return nil
}
