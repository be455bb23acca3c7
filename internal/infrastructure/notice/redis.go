// Package notice keeps screen notices in Redis so every console instance
// behind a load balancer sees the same toasts.
package notice

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/refdata-console/internal/application"
	"github.com/oksasatya/refdata-console/pkg/helpers"
)

const keyPrefix = "console:notices:"

type RedisNotifier struct {
	rdb redis.Cmdable
	ttl time.Duration
}

var _ application.Notifier = (*RedisNotifier)(nil)

func NewRedisNotifier(rdb redis.Cmdable, ttl time.Duration) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, ttl: ttl}
}

func (n *RedisNotifier) Push(ctx context.Context, screen string, msg application.Notice) error {
	if msg.At.IsZero() {
		msg.At = time.Now()
	}
	return helpers.RedisPushJSON(ctx, n.rdb, keyPrefix+screen, msg, n.ttl)
}

func (n *RedisNotifier) Drain(ctx context.Context, screen string) ([]application.Notice, error) {
	return helpers.RedisDrainJSON[application.Notice](ctx, n.rdb, keyPrefix+screen)
}
