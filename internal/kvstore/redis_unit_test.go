package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

type mockRedisClient struct {
	getFunc func(ctx context.Context, key string) *redisv9.StringCmd
	setFunc func(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

func (m *mockRedisClient) Get(ctx context.Context, key string) *redisv9.StringCmd {
	return m.getFunc(ctx, key)
}
func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd {
	return m.setFunc(ctx, key, value, expiration)
}

func TestRedisBackend_GetError(t *testing.T) {
	mockRedis := &mockRedisClient{
		getFunc: func(ctx context.Context, key string) *redisv9.StringCmd {
			return redisv9.NewStringResult("", errors.New("connection reset"))
		},
	}
	b := NewRedisBackend(mockRedis)
	_, err := b.Get(context.Background(), "weather:unit")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Expected transport error, got %v", err)
	}
}

func TestRedisBackend_GetMissing(t *testing.T) {
	mockRedis := &mockRedisClient{
		getFunc: func(ctx context.Context, key string) *redisv9.StringCmd {
			return redisv9.NewStringResult("", redisv9.Nil)
		},
	}
	b := NewRedisBackend(mockRedis)
	if _, err := b.Get(context.Background(), "weather:unit"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRedisBackend_SetNoExpiry(t *testing.T) {
	var gotExpiration time.Duration = -1
	var gotValue interface{}
	mockRedis := &mockRedisClient{
		setFunc: func(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd {
			gotExpiration = expiration
			gotValue = value
			return redisv9.NewStatusResult("OK", nil)
		},
	}
	b := NewRedisBackend(mockRedis)
	if err := b.Set(context.Background(), "weather:unit", "metric"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotExpiration != 0 {
		t.Errorf("Expected no expiration, got %s", gotExpiration)
	}
	if gotValue != "metric" {
		t.Errorf("Expected value metric, got %v", gotValue)
	}
}
