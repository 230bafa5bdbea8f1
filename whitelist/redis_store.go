package whitelist

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/primitivehl/whitelist-checker/metrics"
)

var RedisPrefix = "whitelist-checker:"
var RedisKeyListSnapshot = RedisPrefix + "list-snapshot"

// RedisSnapshotStore shares the list snapshot between instances.
type RedisSnapshotStore struct {
	RedisClient *redis.Client
}

func NewRedisSnapshotStore(redisUrl string) (*RedisSnapshotStore, error) {
	redisClient := redis.NewClient(&redis.Options{Addr: redisUrl})

	// Try to get a key to see if there's an error with the connection
	if err := redisClient.Get(context.Background(), "somekey").Err(); err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "redis init error")
	}

	return &RedisSnapshotStore{
		RedisClient: redisClient,
	}, nil
}

func (s *RedisSnapshotStore) Get(ctx context.Context) (addrs []string, found bool, err error) {
	val, err := s.RedisClient.Get(ctx, RedisKeyListSnapshot).Result()
	if err == redis.Nil {
		return nil, false, nil // just not found
	} else if err != nil {
		metrics.IncRedisErr()
		return nil, false, errors.Wrap(err, "redis get list snapshot")
	}
	if val == "" {
		return nil, false, nil
	}
	return strings.Split(val, "\n"), true, nil
}

func (s *RedisSnapshotStore) Set(ctx context.Context, addrs []string, ttl time.Duration) error {
	err := s.RedisClient.Set(ctx, RedisKeyListSnapshot, strings.Join(addrs, "\n"), ttl).Err()
	if err != nil {
		metrics.IncRedisErr()
		return errors.Wrap(err, "redis set list snapshot")
	}
	return nil
}

func (s *RedisSnapshotStore) Close() error {
	return s.RedisClient.Close()
}
