package container

import (
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/placescout/placescout/internal/core/repositories"
	"github.com/placescout/placescout/internal/core/usecases/getsnapshot"
	"github.com/placescout/placescout/internal/core/usecases/locateplayer"
	"github.com/placescout/placescout/internal/core/usecases/resolveregion"
	"github.com/placescout/placescout/internal/core/usecases/scanservers"
	"github.com/placescout/placescout/internal/geo"
	"github.com/placescout/placescout/internal/metrics"
	"github.com/placescout/placescout/internal/platform"
	"github.com/placescout/placescout/internal/resolver"
)

type Container struct {
	ScanServers   *scanservers.UseCase
	LocatePlayer  locateplayer.UseCase
	ResolveRegion resolveregion.UseCase
	GetSnapshot   getsnapshot.UseCase
}

func New(
	scanServersUseCase *scanservers.UseCase,
	locatePlayerUseCase locateplayer.UseCase,
	resolveRegionUseCase resolveregion.UseCase,
	getSnapshotUseCase getsnapshot.UseCase,
) Container {
	return Container{
		ScanServers:   scanServersUseCase,
		LocatePlayer:  locatePlayerUseCase,
		ResolveRegion: resolveRegionUseCase,
		GetSnapshot:   getSnapshotUseCase,
	}
}

func provideScanServers(
	client *platform.Client,
	snapshots repositories.SnapshotRepository,
	collector *metrics.Collector,
	clock clockwork.Clock,
	logger *zerolog.Logger,
) *scanservers.UseCase {
	return scanservers.New(client, snapshots, collector, clock, logger)
}

func provideLocatePlayer(
	client *platform.Client,
	collector *metrics.Collector,
	clock clockwork.Clock,
	logger *zerolog.Logger,
) locateplayer.UseCase {
	return locateplayer.New(client, client, client, collector, clock, logger)
}

func provideResolveRegion(
	client *platform.Client,
	geoResolver geo.Resolver,
	regions repositories.RegionRepository,
	pool *resolver.Pool,
	collector *metrics.Collector,
	clock clockwork.Clock,
	logger *zerolog.Logger,
) resolveregion.UseCase {
	return resolveregion.New(client, geoResolver, regions, pool, collector, clock, logger)
}

var Module = fx.Module("container",
	fx.Provide(provideScanServers),
	fx.Provide(provideLocatePlayer),
	fx.Provide(provideResolveRegion),
	fx.Provide(getsnapshot.New),
	fx.Provide(New),
)
