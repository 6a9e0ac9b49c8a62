package testapp

import (
	"context"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/placescout/placescout/internal/persistence"
	"github.com/placescout/placescout/internal/persistence/redis"
)

func ProvidePersistence(lc fx.Lifecycle) (persistence.Repositories, error) {
	mr, err := miniredis.Run()
	if err != nil {
		return persistence.Repositories{}, err
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			defer mr.Close()
			return rdb.Close()
		},
	})

	return redis.New(rdb), nil
}

func NoLogging() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
