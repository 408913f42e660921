package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
	"github.com/tuannt39-study/jhipster-sample/internal/domain"
)

// FieldKind 表单控件类型
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldDateTime
	FieldCheckbox
	FieldSelect
	FieldRelation
	FieldMultiRelation
)

// Field 表单字段；Name 即 Values 的键
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Choices  []string // FieldSelect 的固定选项
}

// Option 关联下拉框的一个选项（Value 为被引用实体的键）
type Option struct {
	Value string
	Label string
}

// Values 表单值；多选以逗号分隔
type Values map[string]string

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// Relation 关联字段及其下拉数据来源
type Relation struct {
	Field string
	Multi bool
	Load  func(ctx context.Context) ([]Option, error)
}

// FormBinding 一个实体的表单绑定
type FormBinding[T any] struct {
	Fields    []Field
	Relations []Relation
	// Defaults 新建表单的初始值（不含日期字段，日期字段统一取当天 00:00）
	Defaults Values
	ToValues func(v T, w *FormWriter)
	Apply    func(base T, r *FormReader) T
}

// OptionsFrom 用另一个实体的 reducer 加载下拉选项
func OptionsFrom[T any, K comparable](red *client.Reducer[T, K], label func(T) string) func(ctx context.Context) ([]Option, error) {
	return func(ctx context.Context) ([]Option, error) {
		items, err := red.GetEntities(ctx, client.ListQuery{})
		if err != nil {
			return nil, err
		}
		opts := make([]Option, 0, len(items))
		for _, it := range items {
			key := fmt.Sprint(red.KeyOf(it))
			l := key
			if label != nil {
				l = label(it)
			}
			opts = append(opts, Option{Value: key, Label: l})
		}
		return opts, nil
	}
}

// FormWriter 实体 -> 表单值
type FormWriter struct {
	values Values
	loc    *time.Location
}

func (w *FormWriter) Str(key, s string) { w.values[key] = s }

func (w *FormWriter) Int(key string, n *int64) {
	if n == nil {
		w.values[key] = ""
		return
	}
	w.values[key] = strconv.FormatInt(*n, 10)
}

func (w *FormWriter) Bool(key string, b bool) { w.values[key] = strconv.FormatBool(b) }

func (w *FormWriter) Time(key string, t *time.Time) {
	w.values[key] = DateTimeFromServer(t, w.loc)
}

func (w *FormWriter) Ref(key string, r *domain.Ref) {
	if r == nil {
		w.values[key] = ""
		return
	}
	w.values[key] = strconv.FormatInt(r.ID, 10)
}

func (w *FormWriter) List(key string, items []string) { w.values[key] = strings.Join(items, ",") }

// FormReader 表单值 -> 实体。缺失的键保留 base 的值；第一个解析错误由 Err 返回
type FormReader struct {
	values  Values
	options map[string][]Option
	loc     *time.Location
	err     error
}

func (r *FormReader) Err() error { return r.err }

func (r *FormReader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: %w", key, err)
	}
}

func (r *FormReader) Str(key, base string) string {
	s, ok := r.values[key]
	if !ok {
		return base
	}
	return strings.TrimSpace(s)
}

func (r *FormReader) Int(key string, base *int64) *int64 {
	s, ok := r.values[key]
	if !ok {
		return base
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		r.fail(key, domain.ErrValidation)
		return base
	}
	return &n
}

func (r *FormReader) Bool(key string, base bool) bool {
	s, ok := r.values[key]
	if !ok {
		return base
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return s == "on"
	}
	return b
}

func (r *FormReader) Time(key string, base *time.Time) *time.Time {
	s, ok := r.values[key]
	if !ok {
		return base
	}
	t, err := DateTimeToServer(strings.TrimSpace(s), r.loc)
	if err != nil {
		r.fail(key, errors.Join(domain.ErrValidation, err))
		return base
	}
	return t
}

// Ref 在已加载的选项中查找；找不到则为 nil
func (r *FormReader) Ref(key string, base *domain.Ref) *domain.Ref {
	s, ok := r.values[key]
	if !ok {
		return base
	}
	opt, found := r.lookup(key, strings.TrimSpace(s))
	if !found {
		return nil
	}
	id, err := strconv.ParseInt(opt.Value, 10, 64)
	if err != nil {
		return nil
	}
	return domain.NewRef(id)
}

// Selected 多选字段中能在选项里找到的部分，按表单顺序
func (r *FormReader) Selected(key string) ([]Option, bool) {
	s, ok := r.values[key]
	if !ok {
		return nil, false
	}
	var out []Option
	for _, part := range strings.Split(s, ",") {
		if opt, found := r.lookup(key, strings.TrimSpace(part)); found {
			out = append(out, opt)
		}
	}
	return out, true
}

func (r *FormReader) lookup(key, value string) (Option, bool) {
	if value == "" {
		return Option{}, false
	}
	for _, o := range r.options[key] {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}
