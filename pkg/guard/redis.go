package guard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ลบเฉพาะเมื่อค่ายังเป็น token ของเรา
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis shares the flag between instances through SET NX with a TTL.
type Redis struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedis(rdb *redis.Client, log *zap.Logger) *Redis {
	return &Redis{rdb: rdb, log: log}
}

func (r *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := r.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (r *Redis) Release(ctx context.Context, key, token string) {
	n, err := releaseScript.Run(ctx, r.rdb, []string{key}, token).Int()
	if err != nil {
		r.log.Warn("release lock failed", zap.String("key", key), zap.Error(err))
		return
	}
	if n == 0 {
		r.log.Warn("lock expired before release", zap.String("key", key))
	}
}
