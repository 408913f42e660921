package e2e

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
	"github.com/tuannt39-study/jhipster-sample/internal/domain"
	"github.com/tuannt39-study/jhipster-sample/internal/fixtures"
	"github.com/tuannt39-study/jhipster-sample/internal/view"
)

// Suites 按依赖顺序返回全部实体套件，被引用的实体先创建
func Suites(cat *view.Catalog, c *client.Client, logger *zap.Logger) []Runner {
	calls := c.Interceptor()
	nav := cat.Env.Nav
	return []Runner{
		NewSuite(cat.Regions, calls, nav, fixtures.Regions.New, logger),
		NewSuite(cat.Countries, calls, nav, fixtures.Countries.New, logger),
		NewSuite(cat.Locations, calls, nav, fixtures.Locations.New, logger),
		NewSuite(cat.Departments, calls, nav, fixtures.Departments.New, logger),
		NewSuite(cat.Tasks, calls, nav, fixtures.Tasks.New, logger),
		NewSuite(cat.Employees, calls, nav, fixtures.Employees.New, logger),
		NewSuite(cat.Jobs, calls, nav, fixtures.Jobs.New, logger),
		NewSuite(cat.JobHistories, calls, nav, fixtures.JobHistories.New, logger),
		NewSuite(cat.Users, calls, nav, uniqueUser, logger),
		NewSuite(cat.Authorities, calls, nav, viewerAuthority, logger),
	}
}

func shortID() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:8] }

// uniqueUser login 有唯一约束，重复运行时追加后缀
func uniqueUser() domain.User {
	u := fixtures.Users.New()
	u.Login += "." + shortID()
	return u
}

// viewerAuthority 排在预置的 ROLE_ADMIN / ROLE_USER 之后，"删除最后一个"只会删掉它
func viewerAuthority() domain.Authority {
	return domain.Authority{Name: "ROLE_VIEWER_" + strings.ToUpper(shortID())}
}

// Run 依次执行套件
func Run(ctx context.Context, runners ...Runner) *Report {
	r := &Report{}
	for _, s := range runners {
		r.add(s.Run(ctx)...)
	}
	return r
}

// Select 按资源名过滤套件（空列表为全部）
func Select(runners []Runner, names ...string) []Runner {
	if len(names) == 0 {
		return runners
	}
	var out []Runner
	for _, r := range runners {
		for _, n := range names {
			if strings.EqualFold(r.Resource(), n) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
