package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	e "recovery/internal/core/domain/errors"
	"recovery/internal/core/domain/logging"
	ratelimiter "recovery/internal/core/domain/rate_limiter"
	"time"

	"github.com/go-redis/redis/v9"
)

// Redis implements a fixed window counter, one key per window.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	now         func() time.Time
}

func NewRedis(redisClient *redis.Client, log logging.Logger, now func() time.Time) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{redisClient: redisClient, log: log, now: now}
}

func (r *Redis) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	k, ttl := windowKey(key, limit.Interval, r.now())

	cmds, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, ttl)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return ratelimiter.NotAllowed()
	}
	if err != nil {
		r.log.Error(
			ctx,
			"Could not check rate limit due to Redis client error, request is allowed.",
			logging.Entry("key", k),
			logging.Entry("err", err),
		)
		return ratelimiter.Allowed()
	}
	count := cmds[0].(*redis.IntCmd).Val()
	if count > int64(limit.Value) {
		return ratelimiter.NotAllowed()
	}
	return ratelimiter.Allowed()
}

func windowKey(key string, interval ratelimiter.Interval, now time.Time) (string, time.Duration) {
	now = now.UTC()
	switch interval {
	case ratelimiter.Hour:
		return fmt.Sprintf("rl::%s::%s", key, now.Format("2006010215")), time.Hour
	case ratelimiter.Minute:
		return fmt.Sprintf("rl::%s::%s", key, now.Format("200601021504")), time.Minute
	default:
		panic("invalid rate limiting interval")
	}
}
