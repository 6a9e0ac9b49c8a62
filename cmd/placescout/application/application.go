package application

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/placescout/placescout/cmd/placescout/components/exporter"
	"github.com/placescout/placescout/cmd/placescout/container"
	"github.com/placescout/placescout/cmd/placescout/logging"
	"github.com/placescout/placescout/internal/core/repositories"
	"github.com/placescout/placescout/internal/geo"
	"github.com/placescout/placescout/internal/geo/maxmind"
	"github.com/placescout/placescout/internal/geo/web"
	"github.com/placescout/placescout/internal/metrics"
	"github.com/placescout/placescout/internal/persistence"
	"github.com/placescout/placescout/internal/platform"
	"github.com/placescout/placescout/internal/resolver"
	"github.com/placescout/placescout/internal/validation"
)

type GeoConfig struct {
	Provider string
	BaseURL  string
	DBPath   string
}

type Repositories struct {
	fx.Out

	Regions   repositories.RegionRepository
	Snapshots repositories.SnapshotRepository
}

func provideRepositories(repos persistence.Repositories) Repositories {
	return Repositories{
		Regions:   repos.Regions,
		Snapshots: repos.Snapshots,
	}
}

func provideGeoResolver(lc fx.Lifecycle, cfg GeoConfig) (geo.Resolver, error) {
	if cfg.Provider == "maxmind" {
		reader, err := maxmind.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return reader.Close()
			},
		})
		return reader, nil
	}
	return web.New(cfg.BaseURL), nil
}

func provideResolverPool(
	lc fx.Lifecycle,
	cfg resolver.Config,
	collector *metrics.Collector,
	logger *zerolog.Logger,
) *resolver.Pool {
	pool := resolver.NewPool(cfg, collector, logger)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			pool.Start(ctx) // nolint: contextcheck
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return pool
}

type Builder struct {
	opts []fx.Option
}

func NewBuilder(opts ...fx.Option) *Builder {
	return &Builder{
		opts: opts,
	}
}

func (b *Builder) Add(opts ...fx.Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

func (b *Builder) WithExporter() *Builder {
	return b.Add(
		fx.Invoke(func(*exporter.Component) {}),
	)
}

func (b *Builder) Build() *fx.App {
	return fx.New(b.opts...)
}

var Module = fx.Module("application",
	fx.Invoke(logging.NoGlobal),
	fx.Provide(clockwork.NewRealClock),
	fx.Provide(validation.New),
	fx.Provide(metrics.New),
	fx.Provide(platform.NewClient),
	fx.Provide(provideGeoResolver),
	fx.Provide(provideResolverPool),
	fx.Provide(provideRepositories),
	container.Module,
)
