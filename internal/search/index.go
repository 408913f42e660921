package search

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Index 内存检索索引：按资源分组，文档为扁平化后的字段
//
// 查询语法：空白分隔的词，全部命中才算命中
//   - field:value  字段精确匹配（忽略大小写），如 id:12、language:FRENCH、region.id:3
//   - 其它词        在所有字段上做模糊匹配（fuzzysearch）
//   - *            匹配全部
type Index struct {
	mu   sync.RWMutex
	docs map[string]map[int64]map[string]string
}

func NewIndex() *Index {
	return &Index{docs: map[string]map[int64]map[string]string{}}
}

// Put indexes (or re-indexes) one entity.
func (i *Index) Put(resource string, id int64, v any) error {
	fields, err := Flatten(v)
	if err != nil {
		return fmt.Errorf("failed to index %s %d: %w", resource, id, err)
	}
	fields["id"] = strconv.FormatInt(id, 10)

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.docs[resource] == nil {
		i.docs[resource] = map[int64]map[string]string{}
	}
	i.docs[resource][id] = fields
	return nil
}

func (i *Index) Remove(resource string, id int64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.docs[resource], id)
}

// Reset drops every document of a resource.
func (i *Index) Reset(resource string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.docs, resource)
}

func (i *Index) Len(resource string) int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.docs[resource])
}

type hit struct {
	id    int64
	score int
}

// Search returns matching ids, best fuzzy score first, then by id.
func (i *Index) Search(resource, query string) []int64 {
	terms := strings.Fields(query)

	i.mu.RLock()
	hits := make([]hit, 0)
	for id, fields := range i.docs[resource] {
		if score, ok := matchAll(terms, fields); ok {
			hits = append(hits, hit{id: id, score: score})
		}
	}
	i.mu.RUnlock()

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].score != hits[b].score {
			return hits[a].score < hits[b].score
		}
		return hits[a].id < hits[b].id
	})
	ids := make([]int64, len(hits))
	for n, h := range hits {
		ids[n] = h.id
	}
	return ids
}

func matchAll(terms []string, fields map[string]string) (int, bool) {
	score := 0
	for _, term := range terms {
		if term == "*" {
			continue
		}
		if field, value, ok := strings.Cut(term, ":"); ok && field != "" {
			if !strings.EqualFold(fields[field], value) {
				return 0, false
			}
			continue
		}
		d, ok := fuzzyDistance(term, fields)
		if !ok {
			return 0, false
		}
		score += d
	}
	return score, true
}

func fuzzyDistance(term string, fields map[string]string) (int, bool) {
	values := make([]string, 0, len(fields))
	for k, v := range fields {
		if k == "id" || strings.HasSuffix(k, ".id") || v == "" {
			continue
		}
		values = append(values, v)
	}
	ranks := fuzzy.RankFindNormalizedFold(term, values)
	if len(ranks) == 0 {
		return 0, false
	}
	sort.Sort(ranks)
	return ranks[0].Distance, true
}

// Flatten turns an entity into dotted field -> text pairs via its JSON form.
// Arrays join their element values with a space (tasks.title: "a b").
func Flatten(v any) (map[string]string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	out := map[string]string{}
	flatten("", m, out)
	return out, nil
}

func flatten(prefix string, v any, out map[string]string) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, out)
		}
	case []any:
		for _, child := range val {
			tmp := map[string]string{}
			flatten(prefix, child, tmp)
			for k, s := range tmp {
				if out[k] == "" {
					out[k] = s
				} else {
					out[k] += " " + s
				}
			}
		}
	case nil:
	case float64:
		out[prefix] = strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		out[prefix] = strconv.FormatBool(val)
	case string:
		out[prefix] = val
	}
}
