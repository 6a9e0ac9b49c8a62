package main

import (
	"github.com/alecthomas/kong"
	"go.uber.org/fx"

	"github.com/placescout/placescout/cmd/placescout/application"
	"github.com/placescout/placescout/cmd/placescout/commander"
	"github.com/placescout/placescout/cmd/placescout/components/api"
	"github.com/placescout/placescout/cmd/placescout/components/exporter"
	"github.com/placescout/placescout/cmd/placescout/components/observer"
	"github.com/placescout/placescout/cmd/placescout/components/watcher"
	"github.com/placescout/placescout/cmd/placescout/logging"
	"github.com/placescout/placescout/cmd/placescout/persistence"
	"github.com/placescout/placescout/internal/platform"
	"github.com/placescout/placescout/internal/resolver"
	"github.com/placescout/placescout/internal/settings"
)

func main() {
	cli := commander.CLI{}
	cli.Run.Plugins = kong.Plugins{
		&api.CLI{},
		&observer.CLI{},
		&watcher.CLI{},
	}
	ctx := kong.Parse(
		&cli,
		kong.Name("placescout"),
		kong.Description("Game server scanner and player locator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Summary:   true,
			Tree:      true,
			FlagsLast: true,
		}),
	)

	builder := application.NewBuilder(
		fx.Supply(persistence.Config{
			RedisURL: cli.Globals.RedisURL,
		}),
		fx.Provide(persistence.Provide),
		application.Module,
		fx.Supply(logging.Config{
			LogLevel:  cli.Globals.LogLevel,
			LogOutput: cli.Globals.LogOutput,
		}),
		fx.Supply(settings.Settings{
			ViewerID:        cli.Globals.ViewerID,
			PageLimit:       cli.Globals.ScanPageLimit,
			FingerprintSize: cli.Globals.FingerprintSize,
			TeleportPlaceID: cli.Globals.TeleportPlaceID,
		}),
		fx.Supply(platform.Config{
			GamesBaseURL:      cli.Globals.GamesBaseURL,
			ThumbnailsBaseURL: cli.Globals.ThumbnailsBaseURL,
			UsersBaseURL:      cli.Globals.UsersBaseURL,
			JoinBaseURL:       cli.Globals.JoinBaseURL,
			ViewerID:          cli.Globals.ViewerID,
			PageLimit:         cli.Globals.ScanPageLimit,
			FingerprintSize:   cli.Globals.FingerprintSize,
			RequestsPerSecond: cli.Globals.PlatformRPS,
			Burst:             cli.Globals.PlatformBurst,
		}),
		fx.Supply(application.GeoConfig{
			Provider: cli.Globals.GeoProvider,
			BaseURL:  cli.Globals.GeoBaseURL,
			DBPath:   cli.Globals.GeoDBPath,
		}),
		fx.Supply(resolver.Config{
			Concurrency: cli.Globals.ResolverConcurrency,
			QueueSize:   cli.Globals.ResolverQueueSize,
		}),
		fx.Provide(logging.Provide),
		fx.WithLogger(logging.FxLogger),
		fx.Supply(exporter.Config{
			HTTPListenAddress:   cli.Globals.ExporterHTTPListenAddress,
			HTTPReadTimeout:     cli.Globals.ExporterHTTPReadTimeout,
			HTTPWriteTimeout:    cli.Globals.ExporterHTTPWriteTimeout,
			HTTPShutdownTimeout: cli.Globals.ExporterHTTPShutdownTimeout,
		}),
		exporter.Module,
	)

	if err := ctx.Run(&cli.Globals, builder); err != nil {
		ctx.FatalIfErrorf(err)
	}
}
