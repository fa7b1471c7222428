package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Publisher appends account events to a single Redis stream. Each entry has a
// "type" field, so consumers can filter without decoding, and an "event" field
// holding the JSON envelope.
type Publisher struct {
	client streamAdder
	stream string
	maxLen int64
	now    func() time.Time
}

// NewPublisher writes to stream. A positive maxLen caps the stream at roughly
// that many entries; zero leaves it unbounded.
func NewPublisher(client streamAdder, stream string, maxLen int64) *Publisher {
	return &Publisher{client: client, stream: stream, maxLen: maxLen, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, data any) error {
	payload, err := json.Marshal(Event{
		Type:      eventType,
		Timestamp: p.now().UTC(),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", eventType, err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: []any{"type", eventType, "event", payload},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("append %s event to %s: %w", eventType, p.stream, err)
	}
	return nil
}

// NopPublisher discards events. It is used when no Redis address is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
