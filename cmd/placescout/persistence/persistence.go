package persistence

import (
	goredis "github.com/redis/go-redis/v9"

	"github.com/placescout/placescout/internal/persistence"
	"github.com/placescout/placescout/internal/persistence/memory"
	"github.com/placescout/placescout/internal/persistence/redis"
)

type Config struct {
	RedisURL string
}

// Provide selects the storage backend: redis when a URL is configured,
// process-local memory otherwise.
func Provide(cfg Config) (persistence.Repositories, error) {
	if cfg.RedisURL == "" {
		return memory.New(), nil
	}
	opts, err := goredis.ParseURL(cfg.RedisURL)
	if err != nil {
		return persistence.Repositories{}, err
	}
	client := goredis.NewClient(opts)
	return redis.New(client), nil
}
