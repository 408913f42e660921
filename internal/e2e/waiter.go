package e2e

import (
	"fmt"
	"strings"

	"github.com/tuannt39-study/jhipster-sample/internal/client"
)

// route 一个被拦截的请求模式（对应 cy.intercept 的别名）
type route struct {
	alias  string
	method string
	match  func(path string) bool
}

func exactPath(p string) func(string) bool {
	return func(path string) bool { return path == p }
}

// itemPath 匹配 /api/<res>/<key>，不含子路径
func itemPath(base string) func(string) bool {
	prefix := base + "/"
	return func(path string) bool {
		rest, ok := strings.CutPrefix(path, prefix)
		return ok && rest != "" && !strings.Contains(rest, "/")
	}
}

// waiter 按出现顺序消费拦截到的调用，与 cy.wait('@alias') 相同
type waiter struct {
	calls    *client.Interceptor
	mark     int
	consumed map[string]int
}

func newWaiter(calls *client.Interceptor) *waiter {
	return &waiter{calls: calls, mark: calls.Len(), consumed: map[string]int{}}
}

func (w *waiter) wait(r route) (client.Call, error) {
	calls := w.calls.Since(w.mark)
	for i := w.consumed[r.alias]; i < len(calls); i++ {
		c := calls[i]
		if c.Method == r.method && r.match(c.Path) {
			w.consumed[r.alias] = i + 1
			return c, nil
		}
	}
	return client.Call{}, fmt.Errorf("no %s request observed for @%s", r.method, r.alias)
}

// expectStatus 等待请求并断言状态码
func (w *waiter) expectStatus(r route, status int) error {
	c, err := w.wait(r)
	if err != nil {
		return err
	}
	if c.Status != status {
		return fmt.Errorf("@%s: %s %s returned %d, expected %d", r.alias, c.Method, c.Path, c.Status, status)
	}
	return nil
}
