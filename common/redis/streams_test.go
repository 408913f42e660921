package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestPublishToStream_StringifiesValues(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	id, err := PublishToStream(ctx, client, "test-stream", map[string]interface{}{
		"s": "text",
		"i": 42,
		"b": true,
		"m": map[string]int{"a": 1},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	msgs, err := client.XRange(ctx, "test-stream", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "text", msgs[0].Values["s"])
	assert.Equal(t, "42", msgs[0].Values["i"])
	assert.Equal(t, "true", msgs[0].Values["b"])
	assert.Equal(t, `{"a":1}`, msgs[0].Values["m"])
}

func TestConsumerGroup_ReadsPublishedJSON(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, CreateConsumerGroup(ctx, client, "events", "cli"))
	// 第二次创建应忽略 BUSYGROUP
	require.NoError(t, CreateConsumerGroup(ctx, client, "events", "cli"))

	_, err := PublishJSONToStream(ctx, client, "events", map[string]any{"entity": "job", "id": 7})
	require.NoError(t, err)

	msgs, err := ReadFromStream(ctx, client, "events", "cli", "c1", 10, 100*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "events", msgs[0].Stream)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(msgs[0].Values["data"].(string)), &payload))
	assert.Equal(t, "job", payload["entity"])
	assert.Equal(t, float64(7), payload["id"])
}
