package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	// Per-command bound for lookups made on the POST /images path.
	defaultCommandTimeout = 500 * time.Millisecond
)

// Config selects the Redis server holding idempotency keys and how long
// they live.
type Config struct {
	Addr           string
	Password       string
	DB             int
	DialTimeout    time.Duration
	CommandTimeout time.Duration
	// KeyTTL defaults to DefaultIdempotencyTTL.
	KeyTTL time.Duration
}

// Open dials Redis, pings it and returns the idempotency store on top of the
// connection. A failed ping closes the client; the server then falls back to
// in-memory keys.
func Open(ctx context.Context, cfg Config) (*IdempotencyStore, error) {
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	command := cfg.CommandTimeout
	if command <= 0 {
		command = defaultCommandTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dial,
		ReadTimeout:  command,
		WriteTimeout: command,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dial)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return NewIdempotencyStore(client, cfg.KeyTTL), nil
}
