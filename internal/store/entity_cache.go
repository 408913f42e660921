package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const entityKeyPrefix = "hr:entity:"

// EntityCache 实体读缓存（JSON），key: hr:entity:<resource>:<id>
type EntityCache[T any] struct {
	kv       KV
	resource string
	ttl      time.Duration
}

func NewEntityCache[T any](kv KV, resource string, ttl time.Duration) *EntityCache[T] {
	return &EntityCache[T]{kv: kv, resource: resource, ttl: ttl}
}

func (c *EntityCache[T]) key(id string) string {
	return entityKeyPrefix + c.resource + ":" + id
}

// Get returns ErrMiss when the entry is absent.
func (c *EntityCache[T]) Get(ctx context.Context, id string) (T, error) {
	var v T
	raw, err := c.kv.Get(ctx, c.key(id))
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, fmt.Errorf("failed to decode cached %s %s: %w", c.resource, id, err)
	}
	return v, nil
}

func (c *EntityCache[T]) Set(ctx context.Context, id string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, c.key(id), string(b), c.ttl)
}

func (c *EntityCache[T]) Invalidate(ctx context.Context, id string) error {
	return c.kv.Delete(ctx, c.key(id))
}

// Flush drops every cached entry of this resource.
func (c *EntityCache[T]) Flush(ctx context.Context) error {
	keys, err := c.kv.ScanKeys(ctx, entityKeyPrefix+c.resource+":*")
	if err != nil {
		return err
	}
	return c.kv.Delete(ctx, keys...)
}
