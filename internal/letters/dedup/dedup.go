// Package dedup remembers which inbound message ids were already ingested so
// gateway retries are acknowledged without creating a second letter.
package dedup

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "feder:letters:seen:"

// Redis claims message ids with SET NX so every replica sees the same claim.
type Redis struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// Claim reports true when key was not claimed within ttl.
func (r *Redis) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, keyPrefix+key, time.Now().Unix(), ttl).Result()
}

// Release drops a claim so a failed ingestion can be retried.
func (r *Redis) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}

// Memory is the single-process fallback used when Redis is not configured.
type Memory struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]time.Time), now: time.Now}
}

func (m *Memory) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if expires, ok := m.entries[key]; ok && now.Before(expires) {
		return false, nil
	}
	m.entries[key] = now.Add(ttl)
	m.sweep(now)
	return true, nil
}

func (m *Memory) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// sweep drops expired claims; callers hold mu.
func (m *Memory) sweep(now time.Time) {
	for k, expires := range m.entries {
		if !now.Before(expires) {
			delete(m.entries, k)
		}
	}
}
