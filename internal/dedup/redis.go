package dedup

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	seenURLsKey         = "marketlive:seen:urls"
	seenFingerprintsKey = "marketlive:seen:fingerprints"
)

// admitScript checks and inserts in one round trip so concurrent processes
// sharing the same Redis cannot double-admit an article.
var admitScript = redis.NewScript(`
if redis.call("SISMEMBER", KEYS[1], ARGV[1]) == 1 then
  return 0
end
if redis.call("SISMEMBER", KEYS[2], ARGV[2]) == 1 then
  return 0
end
redis.call("SADD", KEYS[1], ARGV[1])
redis.call("SADD", KEYS[2], ARGV[2])
return 1
`)

// RedisStore shares the seen-state across process restarts and replicas.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Admit(ctx context.Context, url, fingerprint string) (bool, error) {
	keys := []string{seenURLsKey, seenFingerprintsKey}

	n, err := admitScript.Run(ctx, s.client, keys, url, fingerprint).Int()
	if err != nil {
		return false, fmt.Errorf("redis admit: %w", err)
	}
	return n == 1, nil
}

func (s *RedisStore) Counts(ctx context.Context) (int64, int64, error) {
	urls, err := s.client.SCard(ctx, seenURLsKey).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("redis count urls: %w", err)
	}

	fingerprints, err := s.client.SCard(ctx, seenFingerprintsKey).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("redis count fingerprints: %w", err)
	}

	return urls, fingerprints, nil
}
