package redis

import (
	goredis "github.com/redis/go-redis/v9"

	"github.com/placescout/placescout/internal/persistence"
	"github.com/placescout/placescout/internal/persistence/redis/regions"
	"github.com/placescout/placescout/internal/persistence/redis/snapshots"
)

func New(client *goredis.Client) persistence.Repositories {
	return persistence.Repositories{
		Regions:   regions.New(client),
		Snapshots: snapshots.New(client),
	}
}
