package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// OutboxMessage is the cross-service notification envelope pushed onto the
// Redis list by producing services and drained by the notification worker.
type OutboxMessage struct {
	ID     string `json:"id"`
	UserID int64  `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	// NotificationID links back to an already-persisted notification row.
	// Zero means the message originated in another service and the worker
	// persists it on delivery.
	NotificationID int64     `json:"notification_id,omitempty"`
	EnqueuedAt     time.Time `json:"enqueued_at"`
}

// ErrOutboxEmpty signals that a blocking pop timed out with no message.
var ErrOutboxEmpty = errors.New("outbox empty")

// Outbox is the Redis-backed delivery queue.
type Outbox struct {
	client *redis.Client
	key    string
}

// NewOutbox wraps the Redis client around the configured list key.
func NewOutbox(client *redis.Client, key string) *Outbox {
	return &Outbox{client: client, key: key}
}

// Enqueue pushes a message for the notification worker. The id is assigned
// here when the producer left it empty.
func (o *Outbox) Enqueue(ctx context.Context, msg OutboxMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.EnqueuedAt.IsZero() {
		msg.EnqueuedAt = time.Now()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return o.client.LPush(ctx, o.key, payload).Err()
}

// Dequeue blocks up to the given timeout for the next message. Returns
// ErrOutboxEmpty on timeout so the worker loop can distinguish idleness
// from a broken connection.
func (o *Outbox) Dequeue(ctx context.Context, timeout time.Duration) (*OutboxMessage, error) {
	res, err := o.client.BRPop(ctx, timeout, o.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrOutboxEmpty
		}
		return nil, err
	}
	if len(res) != 2 {
		return nil, ErrOutboxEmpty
	}

	var msg OutboxMessage
	if err := json.Unmarshal([]byte(res[1]), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
