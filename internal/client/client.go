package client

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Call 一次已完成的 HTTP 调用（Status 为 0 表示传输层失败）
type Call struct {
	Method string
	Path   string
	Status int
	At     time.Time
}

// Interceptor 记录经由 Client 发出的所有调用，供端到端脚本断言
type Interceptor struct {
	mu    sync.Mutex
	calls []Call
}

func (i *Interceptor) record(c Call) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.calls = append(i.calls, c)
}

func (i *Interceptor) Calls() []Call {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]Call(nil), i.calls...)
}

func (i *Interceptor) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.calls = nil
}

// Since returns the calls recorded after the first n.
func (i *Interceptor) Since(n int) []Call {
	i.mu.Lock()
	defer i.mu.Unlock()
	if n >= len(i.calls) {
		return nil
	}
	return append([]Call(nil), i.calls[n:]...)
}

func (i *Interceptor) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.calls)
}

// Client hr-admin REST 客户端（不重试：一次操作只发一个请求）
type Client struct {
	http        *resty.Client
	interceptor *Interceptor
	logger      *zap.Logger
}

func New(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{interceptor: &Interceptor{}, logger: logger}
	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			c.interceptor.record(Call{
				Method: resp.Request.Method,
				Path:   resp.Request.RawRequest.URL.Path,
				Status: resp.StatusCode(),
				At:     resp.ReceivedAt(),
			})
			return nil
		}).
		OnError(func(req *resty.Request, err error) {
			path := req.URL
			if req.RawRequest != nil {
				path = req.RawRequest.URL.Path
			}
			c.interceptor.record(Call{Method: req.Method, Path: path, At: time.Now()})
			c.logger.Debug("request failed", zap.String("method", req.Method), zap.String("url", req.URL), zap.Error(err))
		})
	return c
}

func (c *Client) Interceptor() *Interceptor { return c.interceptor }

// Resty exposes the underlying client for one-off calls (export download).
func (c *Client) Resty() *resty.Client { return c.http }

// Problem 服务端 application/problem+json 错误体
type Problem struct {
	Title      string `json:"title"`
	Status     int    `json:"status"`
	Detail     string `json:"detail"`
	EntityName string `json:"entityName"`
	ErrorKey   string `json:"errorKey"`
	Message    string `json:"message"`
}

// HTTPError 非 2xx 响应
type HTTPError struct {
	Method  string
	Path    string
	Status  int
	Problem Problem
}

func (e *HTTPError) Error() string {
	msg := e.Problem.Title
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Problem.ErrorKey != "" {
		msg += " (" + e.Problem.ErrorKey + ")"
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		he := &HTTPError{
			Method: resp.Request.Method,
			Path:   resp.Request.RawRequest.URL.Path,
			Status: resp.StatusCode(),
		}
		if p, ok := resp.Error().(*Problem); ok && p != nil {
			he.Problem = *p
		}
		return he
	}
	return nil
}
