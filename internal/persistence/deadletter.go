package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// CascadeFailure captures a quote cascade that did not land, so a later
// reconciliation pass has the raw material to close the gap.
type CascadeFailure struct {
	PaymentID  string    `json:"payment_id"`
	QuoteID    *string   `json:"quote_id,omitempty"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CascadeDeadLetter records failed cascade attempts.
type CascadeDeadLetter interface {
	Record(ctx context.Context, failure CascadeFailure) error
}

type redisDeadLetter struct {
	redis *Redis
	key   string
}

// NewCascadeDeadLetter returns a Redis-backed dead letter list.
func NewCascadeDeadLetter(r *Redis, key string) CascadeDeadLetter {
	return &redisDeadLetter{redis: r, key: key}
}

func (d *redisDeadLetter) Record(ctx context.Context, failure CascadeFailure) error {
	if d.redis == nil || d.redis.Client == nil {
		return errors.New("redis client not configured")
	}
	payload, err := json.Marshal(failure)
	if err != nil {
		return err
	}
	return d.redis.Client.LPush(ctx, d.key, payload).Err()
}
