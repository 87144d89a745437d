package redis

import (
	"context"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// NewClient builds a client for addr. No connection is made until first use.
func NewClient(addr string) *redisv9.Client {
	return redisv9.NewClient(&redisv9.Options{
		Addr:        addr,
		DialTimeout: pingTimeout,
	})
}

// Ping checks that the server at the other end of client is reachable.
func Ping(ctx context.Context, client *redisv9.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}
