package methodcatalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shopbridge/payment-payload-service/internal/logging"
)

// releaseScript deletes the lock only if it still carries our token, so an expired
// lock taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client      redis.UniversalClient
	serviceName string
	ttl         time.Duration
}

func NewRedisLocker(client redis.UniversalClient, serviceName string, ttl time.Duration) Locker {
	return &redisLocker{
		client:      client,
		serviceName: serviceName,
		ttl:         ttl,
	}
}

// NewRedisClient connects to a single redis node.
func NewRedisClient(addr string, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (r *redisLocker) generateKey(key string) string {
	return fmt.Sprintf("%s:%s:%s", r.serviceName, "method-sync", key)
}

func (r *redisLocker) TryLock(ctx context.Context, key string) (func(), error) {
	redisKey := r.generateKey(key)
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return func() {
		// the request context may already be gone
		if err := releaseScript.Run(context.Background(), r.client, []string{redisKey}, token).Err(); err != nil {
			logging.LoggerFromContext(ctx).Warn("failed to release sync lock %s: %v", redisKey, err)
		}
	}, nil
}
