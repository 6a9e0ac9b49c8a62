package regions

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/placescout/placescout/internal/core/entities/region"
	"github.com/placescout/placescout/internal/core/repositories"
)

const itemsKey = "regions:items"

type item struct {
	Label   string `json:"label"`
	Loading bool   `json:"loading"`
}

type Repository struct {
	client *redis.Client
}

func New(client *redis.Client) *Repository {
	return &Repository{
		client: client,
	}
}

func (r *Repository) Get(ctx context.Context, serverID string) (region.Region, error) {
	value, err := r.client.HGet(ctx, itemsKey, serverID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return region.Blank, repositories.ErrRegionNotFound
		}
		return region.Blank, err
	}
	return unmarshal(value)
}

func (r *Repository) Put(ctx context.Context, serverID string, reg region.Region) error {
	value, err := marshal(reg)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, itemsKey, serverID, value).Err()
}

func (r *Repository) PutIfAbsent(ctx context.Context, serverID string, reg region.Region) (bool, error) {
	value, err := marshal(reg)
	if err != nil {
		return false, err
	}
	return r.client.HSetNX(ctx, itemsKey, serverID, value).Result()
}

func (r *Repository) Remove(ctx context.Context, serverID string) error {
	return r.client.HDel(ctx, itemsKey, serverID).Err()
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.client.HLen(ctx, itemsKey).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func marshal(reg region.Region) (string, error) {
	value, err := json.Marshal(item{Label: reg.Label, Loading: reg.Loading})
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func unmarshal(value string) (region.Region, error) {
	var it item
	if err := json.Unmarshal([]byte(value), &it); err != nil {
		return region.Blank, err
	}
	return region.Region{Label: it.Label, Loading: it.Loading}, nil
}
