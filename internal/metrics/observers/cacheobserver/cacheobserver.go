package cacheobserver

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placescout/placescout/internal/core/repositories"
	"github.com/placescout/placescout/internal/metrics"
)

// CacheObserver reports the sizes of the region cache and the snapshot
// store on every observation cycle.
type CacheObserver struct {
	regionRepo   repositories.RegionRepository
	snapshotRepo repositories.SnapshotRepository
	logger       *zerolog.Logger
}

func New(
	collector *metrics.Collector,
	regionRepo repositories.RegionRepository,
	snapshotRepo repositories.SnapshotRepository,
	logger *zerolog.Logger,
) CacheObserver {
	observer := CacheObserver{
		regionRepo:   regionRepo,
		snapshotRepo: snapshotRepo,
		logger:       logger,
	}
	collector.AddObserver(&observer)
	return observer
}

func (o CacheObserver) Observe(ctx context.Context, m *metrics.Collector) {
	if count, err := o.regionRepo.Count(ctx); err != nil {
		o.logger.Warn().Err(err).Msg("Unable to observe region cache size")
	} else {
		m.RegionCacheSize.Set(float64(count))
	}

	if count, err := o.snapshotRepo.Count(ctx); err != nil {
		o.logger.Warn().Err(err).Msg("Unable to observe snapshot store size")
	} else {
		m.SnapshotStoreSize.Set(float64(count))
	}
}
