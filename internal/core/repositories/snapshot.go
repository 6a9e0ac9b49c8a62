package repositories

import (
	"context"

	"github.com/placescout/placescout/internal/core/entities/server"
)

// SnapshotRepository stores the latest accumulated server list per place.
// A running scan replaces the snapshot wholesale after every page so that
// consumers can render partial results while the scan continues.
type SnapshotRepository interface {
	Put(ctx context.Context, placeID int64, servers []server.Server) error
	Get(ctx context.Context, placeID int64) ([]server.Server, error)
	Clear(ctx context.Context, placeID int64) error
	Count(ctx context.Context) (int, error)
}
