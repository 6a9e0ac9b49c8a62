package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/placescout/placescout/internal/core/entities/server"
	"github.com/placescout/placescout/internal/core/repositories"
)

const itemsKey = "snapshots:items"

type item struct {
	ID           string   `json:"id"`
	MaxPlayers   int      `json:"max_players"`
	Playing      int      `json:"playing"`
	PlayerTokens []string `json:"player_tokens,omitempty"`
	FPS          float64  `json:"fps"`
	Ping         int      `json:"ping"`
	AccessCode   string   `json:"access_code,omitempty"`
}

type Repository struct {
	client *redis.Client
}

func New(client *redis.Client) *Repository {
	return &Repository{
		client: client,
	}
}

func (r *Repository) Put(ctx context.Context, placeID int64, servers []server.Server) error {
	items := make([]item, 0, len(servers))
	for _, svr := range servers {
		items = append(items, item{
			ID:           svr.ID,
			MaxPlayers:   svr.MaxPlayers,
			Playing:      svr.Playing,
			PlayerTokens: svr.PlayerTokens,
			FPS:          svr.FPS,
			Ping:         svr.Ping,
			AccessCode:   svr.AccessCode,
		})
	}
	value, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, itemsKey, field(placeID), value).Err()
}

func (r *Repository) Get(ctx context.Context, placeID int64) ([]server.Server, error) {
	value, err := r.client.HGet(ctx, itemsKey, field(placeID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repositories.ErrSnapshotNotFound
		}
		return nil, err
	}

	var items []item
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil, err
	}

	servers := make([]server.Server, 0, len(items))
	for _, it := range items {
		servers = append(servers, server.Server{
			ID:           it.ID,
			MaxPlayers:   it.MaxPlayers,
			Playing:      it.Playing,
			PlayerTokens: it.PlayerTokens,
			FPS:          it.FPS,
			Ping:         it.Ping,
			AccessCode:   it.AccessCode,
		})
	}
	return servers, nil
}

func (r *Repository) Clear(ctx context.Context, placeID int64) error {
	return r.client.HDel(ctx, itemsKey, field(placeID)).Err()
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.client.HLen(ctx, itemsKey).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func field(placeID int64) string {
	return strconv.FormatInt(placeID, 10)
}
