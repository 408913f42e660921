package view

import (
	"context"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
)

// DetailField 详情页的一项
type DetailField struct {
	Label string
	Value string
}

// DetailView 详情页
type DetailView[T any, K comparable] struct {
	heading string
	reducer *client.Reducer[T, K]
	columns []Column[T]
	nav     *Navigator
	routes  Routes
}

func NewDetailView[T any, K comparable](heading string, reducer *client.Reducer[T, K], columns []Column[T], nav *Navigator, routes Routes) *DetailView[T, K] {
	return &DetailView[T, K]{heading: heading, reducer: reducer, columns: columns, nav: nav, routes: routes}
}

func (d *DetailView[T, K]) Heading() string { return d.heading }

func (d *DetailView[T, K]) Open(ctx context.Context, id K) (T, error) {
	d.nav.Push(d.routes.Detail(id))
	return d.reducer.GetEntity(ctx, id)
}

func (d *DetailView[T, K]) Render() []DetailField {
	e := d.reducer.State().Entity
	out := make([]DetailField, len(d.columns))
	for i, c := range d.columns {
		out[i] = DetailField{Label: c.Header, Value: c.Value(e)}
	}
	return out
}

// Back 返回列表
func (d *DetailView[T, K]) Back() { d.nav.Push(d.routes.List()) }

// Edit 跳到编辑页
func (d *DetailView[T, K]) Edit() {
	d.nav.Push(d.routes.Edit(d.reducer.KeyOf(d.reducer.State().Entity)))
}
