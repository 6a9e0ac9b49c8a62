package repositories

import (
	"context"

	"github.com/placescout/placescout/internal/core/entities/region"
)

// RegionRepository is a keyed side cache of resolved regions.
// It is never authoritative over server lifetime: ids from replaced
// scans simply miss, and lookups for unknown ids return
// ErrRegionNotFound rather than failing.
type RegionRepository interface {
	Get(ctx context.Context, serverID string) (region.Region, error)
	Put(ctx context.Context, serverID string, reg region.Region) error
	// PutIfAbsent stores the region only when no entry exists for the id
	// and reports whether it did. It is the single-flight gate for
	// concurrent resolutions of the same server.
	PutIfAbsent(ctx context.Context, serverID string, reg region.Region) (bool, error)
	Remove(ctx context.Context, serverID string) error
	Count(ctx context.Context) (int, error)
}
