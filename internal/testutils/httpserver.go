package testutils

import (
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/placescout/placescout/cmd/placescout/application"
	apicomponent "github.com/placescout/placescout/cmd/placescout/components/api"
	"github.com/placescout/placescout/internal/core/repositories"
	"github.com/placescout/placescout/internal/platform"
	"github.com/placescout/placescout/internal/resolver"
	"github.com/placescout/placescout/internal/settings"
	"github.com/placescout/placescout/internal/testutils/testapp"
)

type TestServerRepositories struct {
	Regions   repositories.RegionRepository
	Snapshots repositories.SnapshotRepository
}

func PrepareTestServer(tb fxtest.TB, extra ...fx.Option) (*httptest.Server, func()) {
	gin.SetMode(gin.ReleaseMode) // prevent gin from overwriting middlewares

	var router *gin.Engine
	fxopts := []fx.Option{
		fx.Supply(apicomponent.Config{
			HTTPListenAddr: "localhost:11337",
		}),
		fx.Supply(settings.Settings{
			PageLimit:       100,
			FingerprintSize: "48x48",
		}),
		fx.Supply(platform.Config{
			PageLimit:         100,
			FingerprintSize:   "48x48",
			RequestsPerSecond: 1000,
			Burst:             1000,
		}),
		fx.Supply(application.GeoConfig{
			Provider: "web",
			BaseURL:  "http://localhost:1",
		}),
		fx.Supply(resolver.Config{
			Concurrency: 2,
			QueueSize:   10,
		}),
		fx.Provide(testapp.ProvidePersistence),
		application.Module,
		apicomponent.Module,
		fx.Provide(testapp.NoLogging),
		fx.NopLogger,
		fx.Populate(&router),
	}
	fxopts = append(fxopts, extra...)

	app := fxtest.New(tb, fxopts...)
	app.RequireStart()

	ts := httptest.NewServer(router)

	return ts, func() {
		defer app.RequireStop() // nolint: errcheck
		defer ts.Close()
	}
}

func PrepareTestServerWithRepos(
	tb fxtest.TB,
	extra ...fx.Option,
) (*httptest.Server, TestServerRepositories, func()) {
	var repos TestServerRepositories
	extra = append(
		extra,
		fx.Populate(&repos.Regions, &repos.Snapshots),
	)
	ts, cleanup := PrepareTestServer(tb, extra...)
	return ts, repos, cleanup
}
