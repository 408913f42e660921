package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
)

// TableRow 表格的一行及其操作链接
type TableRow struct {
	Key        string
	Cells      []string
	DetailLink string
	EditLink   string
	DeleteLink string
}

// TableModel 渲染后的表格
type TableModel struct {
	Headers []string
	Rows    []TableRow
}

// Rendered 列表页的渲染结果。集合为空且不在加载中时 Table 为 nil，Notice 为 "No <Entities> found"
type Rendered struct {
	Heading    string
	Loading    bool
	Query      string
	Table      *TableModel
	Notice     string
	Error      string
	TotalItems int
}

// ListView 实体列表页
type ListView[T any, K comparable] struct {
	heading string
	reducer *client.Reducer[T, K]
	columns []Column[T]
	nav     *Navigator
	routes  Routes

	query string
	page  client.ListQuery
}

func NewListView[T any, K comparable](heading string, reducer *client.Reducer[T, K], columns []Column[T], nav *Navigator, routes Routes) *ListView[T, K] {
	return &ListView[T, K]{heading: heading, reducer: reducer, columns: columns, nav: nav, routes: routes}
}

func (l *ListView[T, K]) Heading() string  { return l.heading }
func (l *ListView[T, K]) Resource() string { return l.reducer.Resource() }
func (l *ListView[T, K]) Routes() Routes   { return l.routes }

// Mount 进入列表页并拉取数据
func (l *ListView[T, K]) Mount(ctx context.Context) error {
	l.nav.Push(l.routes.List())
	return l.fetch(ctx)
}

func (l *ListView[T, K]) fetch(ctx context.Context) error {
	if l.query != "" && l.reducer.Searchable() {
		_, err := l.reducer.SearchEntities(ctx, l.query)
		return err
	}
	_, err := l.reducer.GetEntities(ctx, l.page)
	return err
}

// Search 空查询等同于重新拉取列表
func (l *ListView[T, K]) Search(ctx context.Context, q string) error {
	l.query = strings.TrimSpace(q)
	return l.fetch(ctx)
}

func (l *ListView[T, K]) Clear(ctx context.Context) error {
	l.query = ""
	return l.fetch(ctx)
}

// Refresh 对应页面上的 "Refresh list" 按钮
func (l *ListView[T, K]) Refresh(ctx context.Context) error {
	return l.fetch(ctx)
}

func (l *ListView[T, K]) SetPage(ctx context.Context, page, size int) error {
	l.page.Page = page
	l.page.Size = size
	return l.fetch(ctx)
}

// SetSort field 为 json 字段名
func (l *ListView[T, K]) SetSort(ctx context.Context, field string, asc bool) error {
	dir := "desc"
	if asc {
		dir = "asc"
	}
	l.page.Sort = field + "," + dir
	return l.fetch(ctx)
}

func (l *ListView[T, K]) Entities() []T { return l.reducer.State().Entities }

func (l *ListView[T, K]) OpenCreate()     { l.nav.Push(l.routes.New()) }
func (l *ListView[T, K]) OpenDetail(id K) { l.nav.Push(l.routes.Detail(id)) }
func (l *ListView[T, K]) OpenEdit(id K)   { l.nav.Push(l.routes.Edit(id)) }
func (l *ListView[T, K]) OpenDelete(id K) { l.nav.Push(l.routes.Delete(id)) }

func (l *ListView[T, K]) Render() Rendered {
	st := l.reducer.State()
	out := Rendered{
		Heading:    l.heading,
		Loading:    st.Loading,
		Query:      l.query,
		Error:      st.ErrorMessage,
		TotalItems: st.TotalItems,
	}
	if len(st.Entities) == 0 {
		if !st.Loading {
			out.Notice = fmt.Sprintf("No %s found", l.heading)
		}
		return out
	}

	t := &TableModel{Headers: make([]string, len(l.columns))}
	for i, c := range l.columns {
		t.Headers[i] = c.Header
	}
	for _, e := range st.Entities {
		key := l.reducer.KeyOf(e)
		row := TableRow{
			Key:        fmt.Sprint(key),
			Cells:      make([]string, len(l.columns)),
			DetailLink: l.routes.Detail(key),
			EditLink:   l.routes.Edit(key),
			DeleteLink: l.routes.Delete(key),
		}
		for i, c := range l.columns {
			row.Cells[i] = c.Value(e)
		}
		t.Rows = append(t.Rows, row)
	}
	out.Table = t
	return out
}

// Load 挂载（或检索）后渲染，供命令行使用
func (l *ListView[T, K]) Load(ctx context.Context, query string) (Rendered, error) {
	l.query = strings.TrimSpace(query)
	l.nav.Push(l.routes.List())
	if err := l.fetch(ctx); err != nil {
		return l.Render(), err
	}
	return l.Render(), nil
}
