package httpapi

import (
	"github.com/tuannt39-study/jhipster-sample/internal/service"

	"go.uber.org/zap"
)

// RegisterAPIRoutes 注册全部实体接口
func (r *Router) RegisterAPIRoutes(s *service.Services, logger *zap.Logger) {
	NewEntityHandler(s.Regions, logger).Register(r)
	NewEntityHandler(s.Countries, logger).Register(r)
	NewEntityHandler(s.Locations, logger).Register(r)
	NewEntityHandler(s.Departments, logger).Register(r)
	NewEntityHandler(s.Tasks, logger).Register(r)
	NewEntityHandler(s.Employees, logger).Register(r)
	NewEntityHandler(s.Jobs, logger).Register(r)
	NewEntityHandler(s.JobHistories, logger).Register(r)
	NewEntityHandler(s.Users, logger).Register(r)
	NewAuthorityHandler(s.Authorities, logger).Register(r)
}

// NewAPI 组装完整的 HTTP 路由
func NewAPI(s *service.Services, logger *zap.Logger, corsOrigins []string) *Router {
	r := NewRouter(logger, corsOrigins)
	r.RegisterOpsRoutes()
	r.RegisterAPIRoutes(s, logger)
	return r
}
