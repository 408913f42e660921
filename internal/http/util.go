package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tuannt39-study/jhipster-sample/internal/repository"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = encodeJSON(w, v)
}

func encodeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func readBody(r *http.Request, maxBytes int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, maxBytes))
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := readBody(r, maxBytes)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("empty request body")
	}
	return json.Unmarshal(body, out)
}

const (
	defaultPageSize = 20
	maxPageSize     = 2000
)

// parsePage 解析 ?page=0&size=20&sort=field,asc；未给 page/size 时不分页
// size 上限 maxPageSize，负的 page 按 0 处理
func parsePage(q url.Values) repository.Page {
	p := repository.Page{
		Page: max(parseInt(q.Get("page"), 0), 0),
		Size: min(parseInt(q.Get("size"), 0), maxPageSize),
	}
	if _, ok := q["page"]; ok && p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if sort := q.Get("sort"); sort != "" {
		field, dir, _ := strings.Cut(sort, ",")
		p.Sort = field
		p.Desc = strings.EqualFold(dir, "desc")
	}
	return p
}

// paginationLink 生成 RFC 5988 Link 头（next/prev/last/first）
func paginationLink(u *url.URL, page repository.Page, total int) string {
	if page.Size <= 0 {
		return ""
	}
	last := 0
	if total > 0 {
		last = (total - 1) / page.Size
	}
	link := func(p int, rel string) string {
		q := u.Query()
		q.Set("page", strconv.Itoa(p))
		q.Set("size", strconv.Itoa(page.Size))
		v := *u
		v.RawQuery = q.Encode()
		return fmt.Sprintf(`<%s>; rel="%s"`, v.RequestURI(), rel)
	}

	var parts []string
	if page.Page < last {
		parts = append(parts, link(page.Page+1, "next"))
	}
	if page.Page > 0 {
		parts = append(parts, link(page.Page-1, "prev"))
	}
	parts = append(parts, link(last, "last"), link(0, "first"))
	return strings.Join(parts, ",")
}
