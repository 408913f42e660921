package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	rediscommon "github.com/tuannt39-study/jhipster-sample/common/redis"

	"github.com/go-redis/redis/v8"
)

// RedisStreamPublisher 写入 Redis Stream（字段 data 为事件 JSON）
type RedisStreamPublisher struct {
	client *redis.Client
	stream string
}

func NewRedisStreamPublisher(client *redis.Client, stream string) *RedisStreamPublisher {
	return &RedisStreamPublisher{client: client, stream: stream}
}

func (p *RedisStreamPublisher) Publish(ctx context.Context, e Event) error {
	if _, err := rediscommon.PublishJSONToStream(ctx, p.client, p.stream, e); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", p.stream, err)
	}
	return nil
}

// Tail reads events from the stream through a consumer group until ctx is done.
func Tail(ctx context.Context, client *redis.Client, stream, group, consumer string, handle func(Event) error) error {
	if err := rediscommon.CreateConsumerGroup(ctx, client, stream, group); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	for {
		msgs, err := rediscommon.ReadFromStream(ctx, client, stream, group, consumer, 50, 2*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to read %s: %w", stream, err)
		}
		for _, m := range msgs {
			e, err := DecodeStreamMessage(m)
			if err != nil {
				return err
			}
			if err := handle(e); err != nil {
				return err
			}
			client.XAck(ctx, stream, group, m.ID)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func DecodeStreamMessage(m rediscommon.StreamMessage) (Event, error) {
	var e Event
	raw, ok := m.Values["data"].(string)
	if !ok {
		return e, fmt.Errorf("stream message %s has no data field", m.ID)
	}
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return e, fmt.Errorf("failed to decode stream message %s: %w", m.ID, err)
	}
	return e, nil
}
