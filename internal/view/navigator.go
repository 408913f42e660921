package view

import (
	"fmt"
	"net/url"
	"sync"
)

// Navigator 记录当前路由（无界面时代替浏览器地址栏）
type Navigator struct {
	mu      sync.Mutex
	path    string
	history []string
}

func NewNavigator() *Navigator {
	return &Navigator{path: "/"}
}

func (n *Navigator) Push(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
	n.history = append(n.history, path)
}

func (n *Navigator) Path() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.history...)
}

// Routes 单个实体的页面路由：/job, /job/new, /job/7, /job/7/edit, /job/7/delete
type Routes struct {
	Base string
}

func (r Routes) List() string { return r.Base }
func (r Routes) New() string  { return r.Base + "/new" }

func (r Routes) Detail(key any) string {
	return r.Base + "/" + url.PathEscape(fmt.Sprint(key))
}

func (r Routes) Edit(key any) string   { return r.Detail(key) + "/edit" }
func (r Routes) Delete(key any) string { return r.Detail(key) + "/delete" }
