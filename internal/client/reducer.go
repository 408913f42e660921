package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/go-resty/resty/v2"
)

// State 单个实体的客户端状态
type State[T any] struct {
	Loading       bool
	Updating      bool
	UpdateSuccess bool
	ErrorMessage  string
	Entities      []T
	Entity        T
	TotalItems    int
}

// ListQuery 列表查询（Size 为 0 时不分页）
type ListQuery struct {
	Page int
	Size int
	Sort string // "field,asc"
}

// Reducer 每个操作只发一个请求：读操作置 Loading，写操作置 Updating 并清除 UpdateSuccess
// 失败时数据字段不变、标志位复位并记录 ErrorMessage；并发响应以最后到达的为准
type Reducer[T any, K comparable] struct {
	c          *Client
	resource   string
	keyOf      func(T) K
	searchable bool

	mu    sync.Mutex
	state State[T]
}

func NewReducer[T any, K comparable](c *Client, resource string, keyOf func(T) K, searchable bool) *Reducer[T, K] {
	return &Reducer[T, K]{c: c, resource: resource, keyOf: keyOf, searchable: searchable}
}

func (r *Reducer[T, K]) Resource() string { return r.resource }
func (r *Reducer[T, K]) Searchable() bool { return r.searchable }
func (r *Reducer[T, K]) KeyOf(v T) K      { return r.keyOf(v) }

// State returns a snapshot; the Entities slice is copied.
func (r *Reducer[T, K]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state
	s.Entities = append([]T(nil), r.state.Entities...)
	return s
}

// Reset 回到初始状态
func (r *Reducer[T, K]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = State[T]{}
}

func (r *Reducer[T, K]) base() string { return "/api/" + r.resource }

func (r *Reducer[T, K]) itemPath(id K) string {
	return r.base() + "/" + url.PathEscape(fmt.Sprint(id))
}

func (r *Reducer[T, K]) startRead() {
	r.mu.Lock()
	r.state.Loading = true
	r.state.ErrorMessage = ""
	r.mu.Unlock()
}

func (r *Reducer[T, K]) startWrite() {
	r.mu.Lock()
	r.state.Updating = true
	r.state.UpdateSuccess = false
	r.state.ErrorMessage = ""
	r.mu.Unlock()
}

func (r *Reducer[T, K]) fail(err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Loading = false
	r.state.Updating = false
	r.state.UpdateSuccess = false
	r.state.ErrorMessage = err.Error()
	return err
}

func (r *Reducer[T, K]) GetEntities(ctx context.Context, q ListQuery) ([]T, error) {
	r.startRead()

	var out []T
	req := r.c.http.R().SetContext(ctx).SetResult(&out).SetError(&Problem{})
	if q.Size > 0 {
		req.SetQueryParam("page", strconv.Itoa(q.Page))
		req.SetQueryParam("size", strconv.Itoa(q.Size))
	}
	if q.Sort != "" {
		req.SetQueryParam("sort", q.Sort)
	}
	resp, err := req.Get(r.base())
	if err := checkResponse(resp, err); err != nil {
		return nil, r.fail(err)
	}

	total := len(out)
	if h := resp.Header().Get("X-Total-Count"); h != "" {
		if n, err := strconv.Atoi(h); err == nil {
			total = n
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Loading = false
	r.state.Entities = out
	r.state.TotalItems = total
	return append([]T(nil), out...), nil
}

func (r *Reducer[T, K]) SearchEntities(ctx context.Context, query string) ([]T, error) {
	if !r.searchable {
		return nil, r.fail(errors.New(r.resource + " cannot be searched"))
	}
	r.startRead()

	var out []T
	resp, err := r.c.http.R().SetContext(ctx).SetResult(&out).SetError(&Problem{}).
		SetQueryParam("query", query).
		Get("/api/_search/" + r.resource)
	if err := checkResponse(resp, err); err != nil {
		return nil, r.fail(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Loading = false
	r.state.Entities = out
	r.state.TotalItems = len(out)
	return append([]T(nil), out...), nil
}

func (r *Reducer[T, K]) GetEntity(ctx context.Context, id K) (T, error) {
	r.startRead()

	var out T
	resp, err := r.c.http.R().SetContext(ctx).SetResult(&out).SetError(&Problem{}).Get(r.itemPath(id))
	if err := checkResponse(resp, err); err != nil {
		var zero T
		return zero, r.fail(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Loading = false
	r.state.Entity = out
	return out, nil
}

func (r *Reducer[T, K]) CreateEntity(ctx context.Context, v T) (T, error) {
	r.startWrite()

	var out T
	resp, err := r.c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(v).SetResult(&out).SetError(&Problem{}).
		Post(r.base())
	return r.finishWrite(resp, err, out)
}

func (r *Reducer[T, K]) UpdateEntity(ctx context.Context, v T) (T, error) {
	r.startWrite()

	var out T
	resp, err := r.c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(v).SetResult(&out).SetError(&Problem{}).
		Put(r.itemPath(r.keyOf(v)))
	return r.finishWrite(resp, err, out)
}

// PartialUpdateEntity 发送 merge-patch，只带 v 中已填写的字段（见 patchBody）
func (r *Reducer[T, K]) PartialUpdateEntity(ctx context.Context, v T) (T, error) {
	r.startWrite()

	body, err := patchBody(v)
	if err != nil {
		var zero T
		return zero, r.fail(err)
	}
	var out T
	resp, err := r.c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/merge-patch+json").
		SetBody(body).SetResult(&out).SetError(&Problem{}).
		Patch(r.itemPath(r.keyOf(v)))
	return r.finishWrite(resp, err, out)
}

// patchBody 去掉 null、空字符串与空数组；数字和布尔值原样保留
func patchBody(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patch: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("failed to encode patch: %w", err)
	}
	for k, val := range m {
		switch x := val.(type) {
		case nil:
			delete(m, k)
		case string:
			if x == "" {
				delete(m, k)
			}
		case []any:
			if len(x) == 0 {
				delete(m, k)
			}
		}
	}
	return m, nil
}

func (r *Reducer[T, K]) DeleteEntity(ctx context.Context, id K) error {
	r.startWrite()

	resp, err := r.c.http.R().SetContext(ctx).SetError(&Problem{}).Delete(r.itemPath(id))
	if err := checkResponse(resp, err); err != nil {
		return r.fail(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	r.state.Updating = false
	r.state.UpdateSuccess = true
	r.state.Entity = zero
	return nil
}

func (r *Reducer[T, K]) finishWrite(resp *resty.Response, err error, out T) (T, error) {
	if err := checkResponse(resp, err); err != nil {
		var zero T
		return zero, r.fail(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Updating = false
	r.state.UpdateSuccess = true
	r.state.Entity = out
	return out, nil
}
