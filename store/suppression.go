package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const suppressionKeyPrefix = "reengage:sent"

// RedisSuppressionList keeps one key per contacted user and channel. The key
// expires after the suppression window, so membership alone answers "was
// this user emailed within the last K days".
type RedisSuppressionList struct {
	client *redis.Client
}

var _ SuppressionList = (*RedisSuppressionList)(nil)

// NewRedisSuppressionList wraps an existing Redis client.
func NewRedisSuppressionList(client *redis.Client) *RedisSuppressionList {
	return &RedisSuppressionList{client: client}
}

func suppressionKey(channel, userID string) string {
	return fmt.Sprintf("%s:%s:%s", suppressionKeyPrefix, channel, userID)
}

// Suppressed reports whether the user was already contacted on the channel
// within the suppression window.
func (l *RedisSuppressionList) Suppressed(ctx context.Context, channel, userID string) (bool, error) {
	n, err := l.client.Exists(ctx, suppressionKey(channel, userID)).Result()
	if err != nil {
		return false, fmt.Errorf("check suppression key: %w", err)
	}
	return n > 0, nil
}

// MarkNotified records a successful send, expiring after ttl.
func (l *RedisSuppressionList) MarkNotified(ctx context.Context, channel, userID string, ttl time.Duration) error {
	if err := l.client.Set(ctx, suppressionKey(channel, userID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("set suppression key: %w", err)
	}
	return nil
}
