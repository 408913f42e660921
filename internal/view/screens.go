package view

import (
	"context"
	"sort"
	"time"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
	"github.com/tuannt39-study/jhipster-sample/internal/domain"
)

// Env 视图共享的运行环境
type Env struct {
	Nav *Navigator
	Loc *time.Location
	Now func() time.Time
}

func (e Env) withDefaults() Env {
	if e.Nav == nil {
		e.Nav = NewNavigator()
	}
	if e.Loc == nil {
		e.Loc = time.Local
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	return e
}

// Screens 一个实体的全部页面，共用同一个 reducer
type Screens[T any, K comparable] struct {
	Name    string // "Job"
	Plural  string // "Jobs"
	Reducer *client.Reducer[T, K]
	Routes  Routes
	List    *ListView[T, K]
	Form    *UpdateForm[T, K]
	Detail  *DetailView[T, K]
	Delete  *DeleteDialog[T, K]
}

type screenSpec[T any, K comparable] struct {
	name, plural, route string
	reducer             *client.Reducer[T, K]
	columns             []Column[T]
	detailColumns       []Column[T]
	binding             FormBinding[T]
}

func newScreens[T any, K comparable](env Env, s screenSpec[T, K]) *Screens[T, K] {
	env = env.withDefaults()
	routes := Routes{Base: "/" + s.route}
	detailCols := s.detailColumns
	if detailCols == nil {
		detailCols = s.columns
	}
	return &Screens[T, K]{
		Name:    s.name,
		Plural:  s.plural,
		Reducer: s.reducer,
		Routes:  routes,
		List:    NewListView(s.plural, s.reducer, s.columns, env.Nav, routes),
		Form:    NewUpdateForm(s.name, s.reducer, s.binding, env, routes),
		Detail:  NewDetailView(s.name, s.reducer, detailCols, env.Nav, routes),
		Delete:  NewDeleteDialog(s.name, s.reducer, env.Nav, routes),
	}
}

func RegionScreens(c *client.Client, env Env) *Screens[domain.Region, int64] {
	return newScreens(env, screenSpec[domain.Region, int64]{
		name: "Region", plural: "Regions", route: "region",
		reducer: client.Regions(c), columns: RegionColumns(), binding: RegionBinding(),
	})
}

func CountryScreens(c *client.Client, env Env) *Screens[domain.Country, int64] {
	return newScreens(env, screenSpec[domain.Country, int64]{
		name: "Country", plural: "Countries", route: "country",
		reducer: client.Countries(c), columns: CountryColumns(), binding: CountryBinding(c),
	})
}

func LocationScreens(c *client.Client, env Env) *Screens[domain.Location, int64] {
	return newScreens(env, screenSpec[domain.Location, int64]{
		name: "Location", plural: "Locations", route: "location",
		reducer: client.Locations(c), columns: LocationColumns(), binding: LocationBinding(c),
	})
}

func DepartmentScreens(c *client.Client, env Env) *Screens[domain.Department, int64] {
	return newScreens(env, screenSpec[domain.Department, int64]{
		name: "Department", plural: "Departments", route: "department",
		reducer: client.Departments(c), columns: DepartmentColumns(), binding: DepartmentBinding(c),
	})
}

func TaskScreens(c *client.Client, env Env) *Screens[domain.Task, int64] {
	return newScreens(env, screenSpec[domain.Task, int64]{
		name: "Task", plural: "Tasks", route: "task",
		reducer: client.Tasks(c), columns: TaskColumns(), binding: TaskBinding(),
	})
}

func EmployeeScreens(c *client.Client, env Env) *Screens[domain.Employee, int64] {
	env = env.withDefaults()
	return newScreens(env, screenSpec[domain.Employee, int64]{
		name: "Employee", plural: "Employees", route: "employee",
		reducer: client.Employees(c), columns: EmployeeColumns(env.Loc), binding: EmployeeBinding(c),
	})
}

func JobScreens(c *client.Client, env Env) *Screens[domain.Job, int64] {
	return newScreens(env, screenSpec[domain.Job, int64]{
		name: "Job", plural: "Jobs", route: "job",
		reducer: client.Jobs(c), columns: JobColumns(), detailColumns: JobDetailColumns(),
		binding: JobBinding(c),
	})
}

func JobHistoryScreens(c *client.Client, env Env) *Screens[domain.JobHistory, int64] {
	env = env.withDefaults()
	return newScreens(env, screenSpec[domain.JobHistory, int64]{
		name: "Job History", plural: "Job Histories", route: "job-history",
		reducer: client.JobHistories(c), columns: JobHistoryColumns(env.Loc), binding: JobHistoryBinding(c),
	})
}

func UserScreens(c *client.Client, env Env) *Screens[domain.User, int64] {
	return newScreens(env, screenSpec[domain.User, int64]{
		name: "User", plural: "Users", route: "user",
		reducer: client.Users(c), columns: UserColumns(), binding: UserBinding(c),
	})
}

func AuthorityScreens(c *client.Client, env Env) *Screens[domain.Authority, string] {
	return newScreens(env, screenSpec[domain.Authority, string]{
		name: "Authority", plural: "Authorities", route: "authority",
		reducer: client.Authorities(c), columns: AuthorityColumns(), binding: AuthorityBinding(),
	})
}

// Catalog 全部实体页面
type Catalog struct {
	Env          Env
	Regions      *Screens[domain.Region, int64]
	Countries    *Screens[domain.Country, int64]
	Locations    *Screens[domain.Location, int64]
	Departments  *Screens[domain.Department, int64]
	Tasks        *Screens[domain.Task, int64]
	Employees    *Screens[domain.Employee, int64]
	Jobs         *Screens[domain.Job, int64]
	JobHistories *Screens[domain.JobHistory, int64]
	Users        *Screens[domain.User, int64]
	Authorities  *Screens[domain.Authority, string]
}

func NewCatalog(c *client.Client, env Env) *Catalog {
	env = env.withDefaults()
	return &Catalog{
		Env:          env,
		Regions:      RegionScreens(c, env),
		Countries:    CountryScreens(c, env),
		Locations:    LocationScreens(c, env),
		Departments:  DepartmentScreens(c, env),
		Tasks:        TaskScreens(c, env),
		Employees:    EmployeeScreens(c, env),
		Jobs:         JobScreens(c, env),
		JobHistories: JobHistoryScreens(c, env),
		Users:        UserScreens(c, env),
		Authorities:  AuthorityScreens(c, env),
	}
}

// Lister 与实体类型无关的列表入口（命令行 list 子命令）
type Lister interface {
	Heading() string
	Resource() string
	Load(ctx context.Context, query string) (Rendered, error)
}

// Listers 以资源名为键
func (c *Catalog) Listers() map[string]Lister {
	all := []Lister{
		c.Regions.List, c.Countries.List, c.Locations.List, c.Departments.List, c.Tasks.List,
		c.Employees.List, c.Jobs.List, c.JobHistories.List, c.Users.List, c.Authorities.List,
	}
	out := make(map[string]Lister, len(all))
	for _, l := range all {
		out[l.Resource()] = l
	}
	return out
}

// Resources 排序后的资源名
func (c *Catalog) Resources() []string {
	ls := c.Listers()
	names := make([]string, 0, len(ls))
	for name := range ls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
