// Package ratelimit tracks per-key resend cooldowns for OTP delivery.
//
// The backoff is progressive: the first send has no cooldown, the second
// waits 30 seconds, the third 2 minutes, every later one 5 minutes. The
// store interface exists so a horizontally-scaled deployment can share
// counters through Redis instead of process memory.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// CooldownStore records send attempts and answers whether another send is
// allowed right now.
type CooldownStore interface {
	// CheckAndRecordAttempt returns (true, 0) and records the attempt when
	// a send is allowed, or (false, remaining) when still cooling down.
	CheckAndRecordAttempt(ctx context.Context, key string) (bool, time.Duration, error)
	// Reset clears attempt tracking for a key, e.g. after successful
	// verification.
	Reset(ctx context.Context, key string) error
}

// tracking expires entirely after this long without a send
const trackingTTL = 30 * time.Minute

func cooldownFor(attempts int) time.Duration {
	switch {
	case attempts <= 0:
		return 0
	case attempts == 1:
		return 30 * time.Second
	case attempts == 2:
		return 2 * time.Minute
	default:
		return 5 * time.Minute
	}
}

type memoryEntry struct {
	lastSent time.Time
	attempts int
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore keeps cooldown state in process memory. Suitable for a
// single instance only.
func NewMemoryStore() CooldownStore {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *memoryStore) CheckAndRecordAttempt(_ context.Context, key string) (bool, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry := s.entries[key]

	if !entry.lastSent.IsZero() && now.Sub(entry.lastSent) > trackingTTL {
		entry = memoryEntry{}
	}

	if entry.attempts > 0 {
		remaining := cooldownFor(entry.attempts) - now.Sub(entry.lastSent)
		if remaining > 0 {
			return false, remaining, nil
		}
	}

	entry.lastSent = now
	entry.attempts++
	s.entries[key] = entry
	return true, 0, nil
}

func (s *memoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

type redisStore struct {
	rdb *redis.Client
}

// NewRedisStore shares cooldown state across instances.
func NewRedisStore(rdb *redis.Client) CooldownStore {
	return &redisStore{rdb: rdb}
}

func attemptsKey(key string) string { return "otp:attempts:" + key }
func lastSentKey(key string) string { return "otp:last_sent:" + key }

func (s *redisStore) CheckAndRecordAttempt(ctx context.Context, key string) (bool, time.Duration, error) {
	attempts, err := s.rdb.Get(ctx, attemptsKey(key)).Int()
	if err != nil && err != redis.Nil {
		return false, 0, fmt.Errorf("get attempt count: %w", err)
	}

	if attempts > 0 {
		lastSentUnix, err := s.rdb.Get(ctx, lastSentKey(key)).Int64()
		if err != nil && err != redis.Nil {
			return false, 0, fmt.Errorf("get last sent: %w", err)
		}
		if err == nil {
			remaining := cooldownFor(attempts) - time.Since(time.Unix(lastSentUnix, 0))
			if remaining > 0 {
				return false, remaining, nil
			}
		}
	}

	pipe := s.rdb.TxPipeline()
	pipe.Incr(ctx, attemptsKey(key))
	pipe.Expire(ctx, attemptsKey(key), trackingTTL)
	pipe.Set(ctx, lastSentKey(key), strconv.FormatInt(time.Now().Unix(), 10), trackingTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("record attempt: %w", err)
	}
	return true, 0, nil
}

func (s *redisStore) Reset(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, attemptsKey(key), lastSentKey(key)).Err(); err != nil {
		return fmt.Errorf("reset cooldown: %w", err)
	}
	return nil
}
