package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerSettings tunes the circuit breaker around a Cache.
type BreakerSettings struct {
	Name string
	// ConsecutiveFailures opens the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// BreakerCache fails fast once the wrapped cache keeps erroring, so a dead
// redis costs one error per request instead of a network timeout.
type BreakerCache struct {
	next Cache
	cb   *gobreaker.CircuitBreaker[string]
}

var _ Cache = (*BreakerCache)(nil)

func NewBreakerCache(next Cache, s BreakerSettings) *BreakerCache {
	if s.Name == "" {
		s.Name = "cache"
	}
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if s.OpenTimeout == 0 {
		s.OpenTimeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("cache circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return &BreakerCache{next: next, cb: cb}
}

func (b *BreakerCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	_, err := b.cb.Execute(func() (string, error) {
		return "", b.next.Set(ctx, key, value, ttl)
	})
	return err
}

func (b *BreakerCache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	res, err := b.cb.Execute(func() (string, error) {
		ok, err := b.next.SetNX(ctx, key, value, ttl)
		return strconv.FormatBool(ok), err
	})
	return res == "true", err
}

func (b *BreakerCache) Delete(ctx context.Context, key string) error {
	_, err := b.cb.Execute(func() (string, error) {
		return "", b.next.Delete(ctx, key)
	})
	return err
}

func (b *BreakerCache) Get(ctx context.Context, key string) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.next.Get(ctx, key)
	})
}

func (b *BreakerCache) GenerateKey(operation, key string) string {
	return b.next.GenerateKey(operation, key)
}

func (b *BreakerCache) State() gobreaker.State {
	return b.cb.State()
}
