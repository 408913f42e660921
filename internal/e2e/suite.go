// Package e2e replays the admin UI's entity flows (list, detail, create,
// edit, delete) against a running server through the view models, and
// asserts on the intercepted HTTP calls and the rendered state.
package e2e

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
	"github.com/tuannt39-study/jhipster-sample/internal/view"
)

// errSkip 对应 this.skip()：列表为空时跳过依赖数据的场景
var errSkip = errors.New("skipped: no entities")

// Runner 与实体类型无关的套件
type Runner interface {
	Name() string
	Resource() string
	Run(ctx context.Context) []Result
}

// Suite 一个实体的端到端场景
type Suite[T any, K comparable] struct {
	screens *view.Screens[T, K]
	calls   *client.Interceptor
	nav     *view.Navigator
	sample  func() T
	logger  *zap.Logger

	pageURL          *regexp.Regexp
	entitiesRequest  route
	postRequest      route
	deleteRequest    route
	dialogGetRequest route
}

func NewSuite[T any, K comparable](screens *view.Screens[T, K], calls *client.Interceptor, nav *view.Navigator, sample func() T, logger *zap.Logger) *Suite[T, K] {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := "/api/" + screens.Reducer.Resource()
	return &Suite[T, K]{
		screens:          screens,
		calls:            calls,
		nav:              nav,
		sample:           sample,
		logger:           logger,
		pageURL:          regexp.MustCompile("^" + regexp.QuoteMeta(screens.Routes.List()) + `(\?.*)?$`),
		entitiesRequest:  route{alias: "entitiesRequest", method: http.MethodGet, match: exactPath(base)},
		postRequest:      route{alias: "postEntityRequest", method: http.MethodPost, match: exactPath(base)},
		deleteRequest:    route{alias: "deleteEntityRequest", method: http.MethodDelete, match: itemPath(base)},
		dialogGetRequest: route{alias: "dialogDeleteRequest", method: http.MethodGet, match: itemPath(base)},
	}
}

func (s *Suite[T, K]) Name() string     { return s.screens.Name + " e2e test" }
func (s *Suite[T, K]) Resource() string { return s.screens.Reducer.Resource() }

type scenario struct {
	name string
	run  func(ctx context.Context, w *waiter) error
}

func (s *Suite[T, K]) scenarios() []scenario {
	name := s.screens.Plural
	one := s.screens.Name
	return []scenario{
		{"should load " + name, s.shouldLoad},
		{"should load details " + one + " page", s.shouldLoadDetails},
		{"should load create " + one + " page", s.shouldLoadCreatePage},
		{"should load edit " + one + " page", s.shouldLoadEditPage},
		{"should create an instance of " + one, s.shouldCreate},
		{"should delete last instance of " + one, s.shouldDeleteLast},
	}
}

func (s *Suite[T, K]) Run(ctx context.Context) []Result {
	var out []Result
	for _, sc := range s.scenarios() {
		start := time.Now()
		err := sc.run(ctx, newWaiter(s.calls))
		res := Result{Suite: s.Name(), Scenario: sc.name, Status: StatusPassed, Duration: time.Since(start)}
		switch {
		case errors.Is(err, errSkip):
			res.Status = StatusSkipped
		case err != nil:
			res.Status = StatusFailed
			res.Err = err
			s.logger.Warn("e2e scenario failed",
				zap.String("suite", res.Suite),
				zap.String("scenario", sc.name),
				zap.Error(err))
		}
		out = append(out, res)
	}
	return out
}

// visit 打开列表页并等待列表请求
func (s *Suite[T, K]) visit(ctx context.Context, w *waiter) (view.Rendered, error) {
	if err := s.screens.List.Mount(ctx); err != nil {
		return view.Rendered{}, err
	}
	if err := w.expectStatus(s.entitiesRequest, http.StatusOK); err != nil {
		return view.Rendered{}, err
	}
	return s.screens.List.Render(), nil
}

// backToList 返回列表（重新挂载）并断言 200 与当前路由
func (s *Suite[T, K]) backToList(ctx context.Context, w *waiter) error {
	if _, err := s.visit(ctx, w); err != nil {
		return err
	}
	return s.expectOnListPage()
}

func (s *Suite[T, K]) expectOnListPage() error {
	if p := s.nav.Path(); !s.pageURL.MatchString(p) {
		return fmt.Errorf("url %q does not match %s", p, s.pageURL)
	}
	return nil
}

func (s *Suite[T, K]) shouldLoad(ctx context.Context, w *waiter) error {
	out, err := s.visit(ctx, w)
	if err != nil {
		return err
	}
	empty := len(s.screens.List.Entities()) == 0
	if empty && out.Table != nil {
		return errors.New("table rendered for an empty collection")
	}
	if !empty && out.Table == nil {
		return errors.New("table missing for a non-empty collection")
	}
	if out.Heading != s.screens.Plural {
		return fmt.Errorf("heading %q, expected %q", out.Heading, s.screens.Plural)
	}
	return s.expectOnListPage()
}

func (s *Suite[T, K]) firstKey(ctx context.Context, w *waiter) (K, error) {
	var zero K
	if _, err := s.visit(ctx, w); err != nil {
		return zero, err
	}
	items := s.screens.List.Entities()
	if len(items) == 0 {
		return zero, errSkip
	}
	return s.screens.Reducer.KeyOf(items[0]), nil
}

func (s *Suite[T, K]) shouldLoadDetails(ctx context.Context, w *waiter) error {
	key, err := s.firstKey(ctx, w)
	if err != nil {
		return err
	}
	s.screens.List.OpenDetail(key)
	if _, err := s.screens.Detail.Open(ctx, key); err != nil {
		return err
	}
	if len(s.screens.Detail.Render()) == 0 {
		return errors.New("detail page rendered no fields")
	}
	s.screens.Detail.Back()
	return s.backToList(ctx, w)
}

func (s *Suite[T, K]) shouldLoadCreatePage(ctx context.Context, w *waiter) error {
	if _, err := s.visit(ctx, w); err != nil {
		return err
	}
	s.screens.List.OpenCreate()
	form := s.screens.Form
	if err := form.OpenNew(ctx); err != nil {
		return err
	}
	if !form.CanSave() {
		return fmt.Errorf("%s: save button not available (form %s)", form.Heading(), form.State())
	}
	form.Cancel()
	return s.backToList(ctx, w)
}

func (s *Suite[T, K]) shouldLoadEditPage(ctx context.Context, w *waiter) error {
	key, err := s.firstKey(ctx, w)
	if err != nil {
		return err
	}
	s.screens.List.OpenEdit(key)
	form := s.screens.Form
	if err := form.OpenEdit(ctx, key); err != nil {
		return err
	}
	if !form.CanSave() {
		return fmt.Errorf("%s: save button not available (form %s)", form.Heading(), form.State())
	}
	form.Cancel()
	return s.backToList(ctx, w)
}

// shouldCreate 用样例填表，每个关联选择最后一个选项
func (s *Suite[T, K]) shouldCreate(ctx context.Context, w *waiter) error {
	if _, err := s.visit(ctx, w); err != nil {
		return err
	}
	s.screens.List.OpenCreate()
	form := s.screens.Form
	if err := form.OpenNew(ctx); err != nil {
		return err
	}

	values := form.DefaultValues()
	for k, v := range form.ValuesOf(s.sample()) {
		if v != "" {
			values[k] = v
		}
	}
	for _, f := range form.Fields() {
		if f.Kind != view.FieldRelation && f.Kind != view.FieldMultiRelation {
			continue
		}
		if opts := form.Options(f.Name); len(opts) > 0 {
			values[f.Name] = opts[len(opts)-1].Value
		}
	}

	if _, err := form.Submit(ctx, values); err != nil {
		return err
	}
	if form.CanSave() {
		return errors.New("save button still present after submit")
	}
	if err := w.expectStatus(s.postRequest, http.StatusCreated); err != nil {
		return err
	}
	// 提交成功后跳回列表，列表重新挂载
	return s.backToList(ctx, w)
}

func (s *Suite[T, K]) shouldDeleteLast(ctx context.Context, w *waiter) error {
	out, err := s.visit(ctx, w)
	if err != nil {
		return err
	}
	items := s.screens.List.Entities()
	if len(items) == 0 {
		return errSkip
	}
	if out.Table == nil || len(out.Table.Rows) != len(items) {
		return fmt.Errorf("table should have %d rows", len(items))
	}

	key := s.screens.Reducer.KeyOf(items[len(items)-1])
	s.screens.List.OpenDelete(key)
	dlg := s.screens.Delete
	if err := dlg.Open(ctx, key); err != nil {
		return err
	}
	if _, err := w.wait(s.dialogGetRequest); err != nil {
		return err
	}
	if !dlg.IsOpen() {
		return errors.New("delete dialog not shown")
	}
	if err := dlg.Confirm(ctx); err != nil {
		return err
	}
	if err := w.expectStatus(s.deleteRequest, http.StatusNoContent); err != nil {
		return err
	}
	if err := s.backToList(ctx, w); err != nil {
		return err
	}
	if n := len(s.screens.List.Entities()); n != len(items)-1 {
		return fmt.Errorf("expected %d rows after delete, got %d", len(items)-1, n)
	}
	return nil
}
