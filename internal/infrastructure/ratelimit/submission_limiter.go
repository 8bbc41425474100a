package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubmissionLimiter caps how many complaints a user may submit per day.
// The counter lives in Redis so the cap holds across instances.
type SubmissionLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewSubmissionLimiter(client *redis.Client, limit int) *SubmissionLimiter {
	return &SubmissionLimiter{
		client: client,
		prefix: "submit-limit",
		limit:  limit,
		window: 24 * time.Hour,
	}
}

// Allow increments the user's counter and reports whether the submission
// may proceed. When the cap is hit it also returns how long until the
// window resets.
func (l *SubmissionLimiter) Allow(ctx context.Context, userID string) (bool, time.Duration, error) {
	key := l.prefix + ":" + userID

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count > int64(l.limit) {
		retryAfter, _ := l.client.TTL(ctx, key).Result()
		return false, retryAfter, nil
	}
	return true, 0, nil
}
