package idempotency

//go:generate go run go.uber.org/mock/mockgen -source=./idempotency.go -destination=./mocks/idempotency_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quickcourt/infras/otel"

	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace = "quickcourt:idem"
	lockValue    = "LOCK"
	resultPrefix = "RES:"

	otelScopeName = "idempotency"
)

// Store remembers the outcome of a request identified by a client supplied key
// so that retries replay the first response instead of repeating side effects.
type Store interface {
	Acquire(ctx context.Context, key string, lockTTL time.Duration) (bool, error)
	SaveResult(ctx context.Context, key string, payload []byte) error
	GetResult(ctx context.Context, key string) ([]byte, bool, error)
	Release(ctx context.Context, key string) error
}

// Key scopes the client key to an operation and the calling user.
func Key(operation, userID, clientKey string) string {
	return fmt.Sprintf("%s:%s:%s:%s", keyNamespace, operation, userID, strings.TrimSpace(clientKey))
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	otel   otel.Otel
}

func New(client *redis.Client, ttl time.Duration, otl otel.Otel) Store {
	return &redisStore{
		client: client,
		ttl:    ttl,
		otel:   otl,
	}
}

// Acquire reports whether the caller owns the key. A false result means another
// request with the same key is running or has already finished.
func (s *redisStore) Acquire(ctx context.Context, key string, lockTTL time.Duration) (bool, error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Acquire")
	defer scope.End()

	ok, err := s.client.SetNX(ctx, key, lockValue, lockTTL).Result()
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to acquire idempotency lock: %w", err)
	}

	return ok, nil
}

func (s *redisStore) SaveResult(ctx context.Context, key string, payload []byte) error {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".SaveResult")
	defer scope.End()

	if err := s.client.Set(ctx, key, resultPrefix+string(payload), s.ttl).Err(); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to save idempotent result: %w", err)
	}

	return nil
}

// GetResult returns the stored payload. The boolean is false while the key is
// still locked or unknown.
func (s *redisStore) GetResult(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".GetResult")
	defer scope.End()

	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		scope.TraceError(err)

		return nil, false, fmt.Errorf("failed to read idempotent result: %w", err)
	}

	payload, ok := strings.CutPrefix(value, resultPrefix)
	if !ok {
		return nil, false, nil
	}

	return []byte(payload), true, nil
}

func (s *redisStore) Release(ctx context.Context, key string) error {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Release")
	defer scope.End()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to release idempotency lock: %w", err)
	}

	return nil
}
