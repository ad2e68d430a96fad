package redis

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects and pings. url may be a bare host:port or a redis:// URL.
func InitRedis(ctx context.Context, url, password string) (*redis.Client, error) {
	opts := &redis.Options{Addr: url, Password: password, DB: 0}
	if strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://") {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		if password != "" {
			parsed.Password = password
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	log.Println("[REDIS] Connected successfully")
	return client, nil
}
