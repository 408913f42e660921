package view

import (
	"context"
	"fmt"
	"time"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
)

// FormState 表单状态机：loading -> ready -> submitting -> success（失败回到 ready）
type FormState int

const (
	FormLoading FormState = iota
	FormReady
	FormSubmitting
	FormSuccess
)

func (s FormState) String() string {
	switch s {
	case FormLoading:
		return "loading"
	case FormReady:
		return "ready"
	case FormSubmitting:
		return "submitting"
	case FormSuccess:
		return "success"
	default:
		return fmt.Sprintf("FormState(%d)", int(s))
	}
}

// UpdateForm 新建/编辑页
type UpdateForm[T any, K comparable] struct {
	heading string
	reducer *client.Reducer[T, K]
	binding FormBinding[T]
	nav     *Navigator
	routes  Routes
	loc     *time.Location
	now     func() time.Time

	isNew   bool
	entity  T
	options map[string][]Option
	state   FormState
	err     error
}

func NewUpdateForm[T any, K comparable](heading string, reducer *client.Reducer[T, K], binding FormBinding[T], env Env, routes Routes) *UpdateForm[T, K] {
	env = env.withDefaults()
	return &UpdateForm[T, K]{
		heading: heading,
		reducer: reducer,
		binding: binding,
		nav:     env.Nav,
		routes:  routes,
		loc:     env.Loc,
		now:     env.Now,
		options: map[string][]Option{},
	}
}

// Heading "Create or edit a Job"
func (f *UpdateForm[T, K]) Heading() string  { return "Create or edit a " + f.heading }
func (f *UpdateForm[T, K]) Fields() []Field  { return f.binding.Fields }
func (f *UpdateForm[T, K]) State() FormState { return f.state }
func (f *UpdateForm[T, K]) IsNew() bool      { return f.isNew }
func (f *UpdateForm[T, K]) Err() error       { return f.err }
func (f *UpdateForm[T, K]) Entity() T        { return f.entity }
func (f *UpdateForm[T, K]) CanSave() bool    { return f.state == FormReady }

func (f *UpdateForm[T, K]) Options(field string) []Option {
	return append([]Option(nil), f.options[field]...)
}

// OpenNew 新建：重置 reducer 并加载关联下拉数据
func (f *UpdateForm[T, K]) OpenNew(ctx context.Context) error {
	f.nav.Push(f.routes.New())
	f.isNew = true
	var zero T
	f.entity = zero
	f.reducer.Reset()
	return f.open(ctx, nil)
}

// OpenEdit 编辑：额外 GET 一次实体
func (f *UpdateForm[T, K]) OpenEdit(ctx context.Context, id K) error {
	f.nav.Push(f.routes.Edit(id))
	f.isNew = false
	return f.open(ctx, func(ctx context.Context) error {
		v, err := f.reducer.GetEntity(ctx, id)
		if err != nil {
			return err
		}
		f.entity = v
		return nil
	})
}

func (f *UpdateForm[T, K]) open(ctx context.Context, load func(context.Context) error) error {
	f.state = FormLoading
	f.err = nil
	if load != nil {
		if err := load(ctx); err != nil {
			f.err = err
			return err
		}
	}
	f.options = map[string][]Option{}
	for _, rel := range f.binding.Relations {
		opts, err := rel.Load(ctx)
		if err != nil {
			f.err = fmt.Errorf("load %s options: %w", rel.Field, err)
			return f.err
		}
		f.options[rel.Field] = opts
	}
	f.state = FormReady
	return nil
}

// DefaultValues 新建时日期字段为当天 00:00；编辑时为实体的值
func (f *UpdateForm[T, K]) DefaultValues() Values {
	if f.isNew {
		vals := f.binding.Defaults.Clone()
		def := DefaultDateTime(f.now(), f.loc)
		for _, fd := range f.binding.Fields {
			if fd.Kind == FieldDateTime {
				vals[fd.Name] = def
			}
		}
		return vals
	}
	w := &FormWriter{values: Values{}, loc: f.loc}
	f.binding.ToValues(f.entity, w)
	w.Str("id", fmt.Sprint(f.reducer.KeyOf(f.entity)))
	return w.values
}

// ValuesOf 把任意实体写成表单值（脚本用样例数据填表）
func (f *UpdateForm[T, K]) ValuesOf(v T) Values {
	w := &FormWriter{values: Values{}, loc: f.loc}
	f.binding.ToValues(v, w)
	return w.values
}

// Submit 合并表单值、解析关联后新建或更新；成功后跳回列表
func (f *UpdateForm[T, K]) Submit(ctx context.Context, values Values) (T, error) {
	var zero T
	if f.state != FormReady {
		return zero, fmt.Errorf("form is %s", f.state)
	}
	r := &FormReader{values: values, options: f.options, loc: f.loc}
	entity := f.binding.Apply(f.entity, r)
	if err := r.Err(); err != nil {
		f.err = err
		return zero, err
	}

	f.state = FormSubmitting
	var (
		saved T
		err   error
	)
	if f.isNew {
		saved, err = f.reducer.CreateEntity(ctx, entity)
	} else {
		saved, err = f.reducer.UpdateEntity(ctx, entity)
	}
	if err != nil {
		f.state = FormReady
		f.err = err
		return zero, err
	}
	f.entity = saved
	f.state = FormSuccess
	f.err = nil
	f.nav.Push(f.routes.List())
	return saved, nil
}

// Cancel 返回列表
func (f *UpdateForm[T, K]) Cancel() {
	f.nav.Push(f.routes.List())
}
