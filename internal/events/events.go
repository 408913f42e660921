package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event 实体变更事件
type Event struct {
	EventID string    `json:"event_id"`
	Entity  string    `json:"entity"`
	Action  Action    `json:"action"`
	ID      string    `json:"id"`
	At      time.Time `json:"at"`
}

func NewEvent(entity string, action Action, id string) Event {
	return Event{
		EventID: uuid.NewString(),
		Entity:  entity,
		Action:  action,
		ID:      id,
		At:      time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop 未配置事件后端时使用
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
