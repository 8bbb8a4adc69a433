package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every API instance. Each holder writes a
// random token so that an expired lock taken over by another instance is
// never released by the previous owner.
type Redis struct {
	rdb   *redis.Client
	ttl   time.Duration
	retry time.Duration
	log   *zap.Logger
}

func NewRedis(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Redis{rdb: rdb, ttl: ttl, retry: 25 * time.Millisecond, log: log}
}

func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(r.ttl)

	for {
		ok, err := r.rdb.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.retry):
		}
	}

	return func() {
		// the request context may already be cancelled here
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, r.rdb, []string{key}, token).Err(); err != nil {
			r.log.Warn("release booking lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
