package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 5 * time.Second

// Config locates the Redis instance that receives account events.
type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Connect opens a client for cfg and pings it once. The client is closed
// again if the ping fails.
func Connect(ctx context.Context, cfg Config) (*goredis.Client, error) {
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		ClientName:  "account-service",
		DialTimeout: timeout,
		MaxRetries:  2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}
