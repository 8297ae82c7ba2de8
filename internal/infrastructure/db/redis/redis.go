// Package redis opens the connection backing the session store. The
// service keeps no other state, so an unreachable Redis is fatal at boot.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

type Config struct {
	Addr     string
	Password string
	DB       int
}

// Connect dials Redis and verifies reachability before the router starts
// accepting traffic; without it every visitor would look logged out.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("session store unreachable at %s: %w", cfg.Addr, err)
	}
	return client, nil
}
