package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	e := NewEvent("job", ActionCreated, "7")
	assert.NotEmpty(t, e.EventID)
	assert.Equal(t, "job", e.Entity)
	assert.Equal(t, ActionCreated, e.Action)
	assert.Equal(t, "7", e.ID)
	assert.False(t, e.At.IsZero())

	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"event_id"`)
	assert.Contains(t, string(b), `"action":"created"`)
}

func TestRedisStreamPublisher_PublishAndTail(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	pub := NewRedisStreamPublisher(client, "hr:entity-events")
	require.NoError(t, pub.Publish(context.Background(), NewEvent("task", ActionDeleted, "3")))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got []Event
	stop := errors.New("stop")
	err := Tail(ctx, client, "hr:entity-events", "test", "c1", func(e Event) error {
		got = append(got, e)
		return stop
	})
	assert.ErrorIs(t, err, stop)
	require.Len(t, got, 1)
	assert.Equal(t, "task", got[0].Entity)
	assert.Equal(t, ActionDeleted, got[0].Action)
	assert.Equal(t, "3", got[0].ID)
}

type fakeMQTT struct {
	topic   string
	qos     byte
	payload []byte
}

func (f *fakeMQTT) Publish(topic string, qos byte, _ bool, payload []byte) error {
	f.topic, f.qos, f.payload = topic, qos, payload
	return nil
}

func (f *fakeMQTT) QoS() byte { return 1 }

func TestMQTTPublisher_Publish(t *testing.T) {
	c := &fakeMQTT{}
	pub := NewMQTTPublisher(c, "hr/entity-events")

	require.NoError(t, pub.Publish(context.Background(), NewEvent("region", ActionUpdated, "2")))
	assert.Equal(t, "hr/entity-events", c.topic)
	assert.Equal(t, byte(1), c.qos)

	var e Event
	require.NoError(t, json.Unmarshal(c.payload, &e))
	assert.Equal(t, "region", e.Entity)
	assert.Equal(t, ActionUpdated, e.Action)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), NewEvent("x", ActionCreated, "1")))
}
