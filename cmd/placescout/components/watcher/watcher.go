package watcher

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/placescout/placescout/cmd/placescout/application"
	"github.com/placescout/placescout/cmd/placescout/commander"
	"github.com/placescout/placescout/internal/core/usecases/scanservers"
)

type Config struct {
	WatchInterval time.Duration
	WatchPlaces   []int64
}

type Component struct{}

func run(
	stop chan struct{},
	stopped chan struct{},
	clock clockwork.Clock,
	logger *zerolog.Logger,
	uc *scanservers.UseCase,
	cfg Config,
) {
	ticker := clock.NewTicker(cfg.WatchInterval)
	tickerCh := ticker.Chan()
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info().
		Dur("interval", cfg.WatchInterval).Ints64("places", cfg.WatchPlaces).
		Msg("Starting watcher")

	for {
		select {
		case <-stop:
			close(stopped)
			return
		case <-tickerCh:
			rescan(ctx, logger, uc, cfg)
		}
	}
}

// rescan keeps the snapshots of the watched places warm. A place whose
// previous scan is still walking pages is left alone until the next tick.
func rescan(
	ctx context.Context,
	logger *zerolog.Logger,
	uc *scanservers.UseCase,
	cfg Config,
) {
	for _, placeID := range cfg.WatchPlaces {
		status, err := uc.Start(ctx, placeID)
		switch {
		case errors.Is(err, scanservers.ErrScanInProgress):
			logger.Debug().Int64("place", placeID).Msg("Skipping place with a running scan")
		case err != nil:
			logger.Warn().Err(err).Int64("place", placeID).Msg("Unable to rescan watched place")
		default:
			logger.Info().
				Int64("place", placeID).Stringer("session", status.SessionID).
				Msg("Rescanning watched place")
		}
	}
}

func New(
	lc fx.Lifecycle,
	cfg Config,
	clock clockwork.Clock,
	uc *scanservers.UseCase,
	logger *zerolog.Logger,
) *Component {
	stopped := make(chan struct{})
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go run(stop, stopped, clock, logger, uc, cfg) // nolint: contextcheck
			return nil
		},
		OnStop: func(context.Context) error {
			close(stop)
			<-stopped
			logger.Info().Msg("Watcher stopped")
			return nil
		},
	})

	return &Component{}
}

type command struct {
	WatchInterval time.Duration `default:"1m" help:"Sets how often the watched places are rescanned"`
	WatchPlaces   []int64       `required:""  help:"Lists the place ids to keep scanned in the background"`
}

func (c *command) Run(_ *commander.Globals, builder *application.Builder) error {
	app := builder.
		Add(
			fx.Supply(Config{
				WatchInterval: c.WatchInterval,
				WatchPlaces:   c.WatchPlaces,
			}),
			Module,
			fx.Invoke(func(_ *Component) {}),
		).
		WithExporter().
		Build()
	app.Run()
	return nil
}

type CLI struct {
	Watcher command `cmd:"" help:"Start watcher"`
}

var Module = fx.Module("watcher",
	fx.Provide(New),
)
