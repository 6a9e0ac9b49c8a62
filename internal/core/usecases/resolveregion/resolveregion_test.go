package resolveregion_test

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/placescout/placescout/internal/core/repositories"
	"github.com/placescout/placescout/internal/core/usecases/resolveregion"
	"github.com/placescout/placescout/internal/geo"
	"github.com/placescout/placescout/internal/metrics"
	"github.com/placescout/placescout/internal/persistence/memory/regions"
	"github.com/placescout/placescout/internal/platform"
	"github.com/placescout/placescout/internal/resolver"
)

type MockJoinProber struct {
	mock.Mock
}

func (m *MockJoinProber) JoinProbe(
	ctx context.Context,
	placeID int64,
	serverID string,
	isTeleport bool,
) (platform.JoinResult, error) {
	args := m.Called(ctx, placeID, serverID, isTeleport)
	return args.Get(0).(platform.JoinResult), args.Error(1) // nolint: forcetypeassert
}

type MockGeoResolver struct {
	mock.Mock
}

func (m *MockGeoResolver) Locate(ctx context.Context, ip string) (geo.Place, error) {
	args := m.Called(ctx, ip)
	return args.Get(0).(geo.Place), args.Error(1) // nolint: forcetypeassert
}

// inlineRunner executes submitted tasks synchronously, making the
// resolution outcome observable right after Execute returns.
type inlineRunner struct{}

func (inlineRunner) Submit(task resolver.Task) error {
	task(context.TODO())
	return nil
}

type rejectingRunner struct{}

func (rejectingRunner) Submit(resolver.Task) error {
	return resolver.ErrQueueFull
}

// idleRunner accepts tasks without ever executing them, keeping the
// cache entry in its loading state.
type idleRunner struct{}

func (idleRunner) Submit(resolver.Task) error {
	return nil
}

func makeUseCase(
	prober *MockJoinProber,
	geoResolver *MockGeoResolver,
	repo repositories.RegionRepository,
	runner resolveregion.Runner,
) resolveregion.UseCase {
	logger := zerolog.Nop()
	clock := clockwork.NewFakeClock()
	return resolveregion.New(prober, geoResolver, repo, runner, metrics.New(), clock, &logger)
}

func TestResolveRegionUseCase_ResolveWithGeoLabel(t *testing.T) {
	ctx := context.TODO()
	repo := regions.New()

	prober := new(MockJoinProber)
	prober.On("JoinProbe", mock.Anything, int64(1000), "job-1", false).
		Return(platform.JoinResult{MachineAddress: "128.116.5.3", Status: 2}, nil)

	geoResolver := new(MockGeoResolver)
	geoResolver.On("Locate", mock.Anything, "128.116.5.3").
		Return(geo.Place{City: "Frankfurt", CountryCode: "DE"}, nil)

	uc := makeUseCase(prober, geoResolver, repo, inlineRunner{})

	reg, err := uc.Execute(ctx, resolveregion.NewRequest(1000, "job-1"))
	require.NoError(t, err)
	// Execute reports the claim; the inline runner has already resolved it
	assert.True(t, reg.Loading)

	resolved, err := uc.Lookup(ctx, "job-1")
	require.NoError(t, err)
	assert.False(t, resolved.Loading)
	assert.Equal(t, "Frankfurt, DE", resolved.Label)
}

func TestResolveRegionUseCase_RepeatedResolveIsNoop(t *testing.T) {
	ctx := context.TODO()
	repo := regions.New()

	prober := new(MockJoinProber)
	prober.On("JoinProbe", mock.Anything, int64(1000), "job-1", false).
		Return(platform.JoinResult{MachineAddress: "128.116.5.3", Status: 2}, nil)

	geoResolver := new(MockGeoResolver)
	geoResolver.On("Locate", mock.Anything, "128.116.5.3").
		Return(geo.Place{City: "Frankfurt", CountryCode: "DE"}, nil)

	uc := makeUseCase(prober, geoResolver, repo, inlineRunner{})

	for i := 0; i < 3; i++ {
		_, err := uc.Execute(ctx, resolveregion.NewRequest(1000, "job-1"))
		require.NoError(t, err)
	}

	prober.AssertNumberOfCalls(t, "JoinProbe", 1)
}

func TestResolveRegionUseCase_ResolveWhileLoadingIsNoop(t *testing.T) {
	ctx := context.TODO()
	repo := regions.New()

	prober := new(MockJoinProber)
	geoResolver := new(MockGeoResolver)
	uc := makeUseCase(prober, geoResolver, repo, idleRunner{})

	reg, err := uc.Execute(ctx, resolveregion.NewRequest(1000, "job-1"))
	require.NoError(t, err)
	assert.True(t, reg.Loading)

	reg, err = uc.Execute(ctx, resolveregion.NewRequest(1000, "job-1"))
	require.NoError(t, err)
	assert.True(t, reg.Loading)

	prober.AssertNotCalled(t, "JoinProbe", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveRegionUseCase_DeclinedJoinCachesMessage(t *testing.T) {
	ctx := context.TODO()
	repo := regions.New()

	prober := new(MockJoinProber)
	prober.On("JoinProbe", mock.Anything, int64(1000), "job-1", false).
		Return(platform.JoinResult{Status: 12, Message: "You need to purchase access"}, nil)

	geoResolver := new(MockGeoResolver)
	uc := makeUseCase(prober, geoResolver, repo, inlineRunner{})

	_, err := uc.Execute(ctx, resolveregion.NewRequest(1000, "job-1"))
	require.NoError(t, err)

	resolved, err := uc.Lookup(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "You need to purchase access", resolved.Label)
	geoResolver.AssertNotCalled(t, "Locate", mock.Anything, mock.Anything)
}

func TestResolveRegionUseCase_DeclinedJoinWithoutMessage(t *testing.T) {
	ctx := context.TODO()
	repo := regions.New()

	prober := new(MockJoinProber)
	prober.On("JoinProbe", mock.Anything, int64(1000), "job-1", false).
		Return(platform.JoinResult{Status: 12}, nil)

	uc := makeUseCase(prober, new(MockGeoResolver), repo, inlineRunner{})

	_, err := uc.Execute(ctx, resolveregion.NewRequest(1000, "job-1"))
	require.NoError(t, err)

	resolved, err := uc.Lookup(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "declined (status 12)", resolved.Label)
}

func TestResolveRegionUseCase_GeoFailureFallsBackToAddress(t *testing.T) {
	ctx := context.TODO()
	repo := regions.New()

	prober := new(MockJoinProber)
	prober.On("JoinProbe", mock.Anything, int64(1000), "job-1", false).
		Return(platform.JoinResult{MachineAddress: "128.116.5.3", Status: 2}, nil)

	geoResolver := new(MockGeoResolver)
	geoResolver.On("Locate", mock.Anything, "128.116.5.3").
		Return(geo.Place{}, assert.AnError)

	uc := makeUseCase(prober, geoResolver, repo, inlineRunner{})

	_, err := uc.Execute(ctx, resolveregion.NewRequest(1000, "job-1"))
	require.NoError(t, err)

	resolved, err := uc.Lookup(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "128.116.5.3", resolved.Label)
}

func TestResolveRegionUseCase_TeleportProbesConfiguredPlace(t *testing.T) {
	ctx := context.TODO()
	repo := regions.New()

	prober := new(MockJoinProber)
	prober.On("JoinProbe", mock.Anything, int64(7777), "job-1", true).
		Return(platform.JoinResult{MachineAddress: "128.116.5.3", Status: 2}, nil)

	geoResolver := new(MockGeoResolver)
	geoResolver.On("Locate", mock.Anything, "128.116.5.3").
		Return(geo.Place{City: "Ashburn", CountryCode: "US"}, nil)

	uc := makeUseCase(prober, geoResolver, repo, inlineRunner{})

	_, err := uc.Execute(ctx, resolveregion.NewTeleportRequest(1000, "job-1", 7777))
	require.NoError(t, err)

	prober.AssertCalled(t, "JoinProbe", mock.Anything, int64(7777), "job-1", true)
}

func TestResolveRegionUseCase_FullQueueReleasesClaim(t *testing.T) {
	ctx := context.TODO()
	repo := regions.New()

	uc := makeUseCase(new(MockJoinProber), new(MockGeoResolver), repo, rejectingRunner{})

	_, err := uc.Execute(ctx, resolveregion.NewRequest(1000, "job-1"))
	assert.ErrorIs(t, err, resolver.ErrQueueFull)

	// the claim is rolled back, so a later attempt may try again
	_, err = uc.Lookup(ctx, "job-1")
	assert.ErrorIs(t, err, repositories.ErrRegionNotFound)
}

func TestResolveRegionUseCase_LookupUnknownServer(t *testing.T) {
	ctx := context.TODO()
	uc := makeUseCase(new(MockJoinProber), new(MockGeoResolver), regions.New(), idleRunner{})

	_, err := uc.Lookup(ctx, "job-unknown")
	assert.ErrorIs(t, err, repositories.ErrRegionNotFound)
}

func TestResolveRegionUseCase_ValidateRequest(t *testing.T) {
	ctx := context.TODO()
	uc := makeUseCase(new(MockJoinProber), new(MockGeoResolver), regions.New(), idleRunner{})

	tests := []struct {
		name     string
		placeID  int64
		serverID string
		wantErr  error
	}{
		{"zero place id", 0, "job-1", resolveregion.ErrInvalidPlaceID},
		{"negative place id", -1, "job-1", resolveregion.ErrInvalidPlaceID},
		{"empty server id", 1000, "", resolveregion.ErrInvalidServerID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, resolveregion.Request{PlaceID: tt.placeID, ServerID: tt.serverID})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := uc.Lookup(ctx, "")
	assert.ErrorIs(t, err, resolveregion.ErrInvalidServerID)
}
