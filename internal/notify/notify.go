// Package notify broadcasts human-readable lifecycle events ("new user: ...").
// Delivery is best effort: a Notifier never blocks or fails its caller.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Notifier interface {
	Notify(ctx context.Context, msg string)
}

// Nop is used when no sink is configured.
type Nop struct{}

func (Nop) Notify(context.Context, string) {}

// RedisNotifier publishes each message on a redis pub/sub channel from its
// own goroutine.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
	timeout time.Duration
	log     *zap.Logger
	wg      sync.WaitGroup
}

func NewRedis(rdb *redis.Client, channel string, l *zap.Logger) *RedisNotifier {
	if l == nil {
		l = zap.NewNop()
	}
	return &RedisNotifier{rdb: rdb, channel: channel, timeout: 2 * time.Second, log: l}
}

func (n *RedisNotifier) Notify(_ context.Context, msg string) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.rdb.Publish(ctx, n.channel, msg).Err(); err != nil {
			n.log.Debug("notify skipped", zap.String("channel", n.channel), zap.Error(err))
			return
		}
		n.log.Debug("notify sent", zap.String("channel", n.channel), zap.String("msg", msg))
	}()
}

// Close waits for in-flight publishes.
func (n *RedisNotifier) Close() { n.wg.Wait() }
