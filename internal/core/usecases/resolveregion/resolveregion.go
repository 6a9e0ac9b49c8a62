package resolveregion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/placescout/placescout/internal/core/entities/region"
	"github.com/placescout/placescout/internal/core/repositories"
	"github.com/placescout/placescout/internal/geo"
	"github.com/placescout/placescout/internal/metrics"
	"github.com/placescout/placescout/internal/platform"
	"github.com/placescout/placescout/internal/resolver"
)

var (
	ErrInvalidPlaceID  = errors.New("place id must be a positive integer")
	ErrInvalidServerID = errors.New("server id cannot be empty")
)

type JoinProber interface {
	JoinProbe(ctx context.Context, placeID int64, serverID string, isTeleport bool) (platform.JoinResult, error)
}

type Runner interface {
	Submit(task resolver.Task) error
}

type Request struct {
	PlaceID         int64
	ServerID        string
	TeleportPlaceID int64
}

func NewRequest(placeID int64, serverID string) Request {
	return Request{
		PlaceID:  placeID,
		ServerID: serverID,
	}
}

// NewTeleportRequest probes against a different place id than the one
// being browsed, for places that teleport joiners into a sub-place.
func NewTeleportRequest(placeID int64, serverID string, teleportPlaceID int64) Request {
	return Request{
		PlaceID:         placeID,
		ServerID:        serverID,
		TeleportPlaceID: teleportPlaceID,
	}
}

// UseCase resolves the network region of individual servers on demand.
// Resolutions are independent units of work executed on a bounded
// runner; the cache entry is marked loading synchronously before the
// work is submitted, so a second resolve for the same id while one is
// in flight is a no-op.
type UseCase struct {
	prober  JoinProber
	geo     geo.Resolver
	regions repositories.RegionRepository
	runner  Runner
	metrics *metrics.Collector
	clock   clockwork.Clock
	logger  *zerolog.Logger
}

func New(
	prober JoinProber,
	geoResolver geo.Resolver,
	regions repositories.RegionRepository,
	runner Runner,
	collector *metrics.Collector,
	clock clockwork.Clock,
	logger *zerolog.Logger,
) UseCase {
	return UseCase{
		prober:  prober,
		geo:     geoResolver,
		regions: regions,
		runner:  runner,
		metrics: collector,
		clock:   clock,
		logger:  logger,
	}
}

// Execute triggers a resolution for one server. It returns the cached
// region when one exists (resolved or still loading) without issuing
// any probe; otherwise it claims the cache slot and schedules the probe.
func (uc UseCase) Execute(ctx context.Context, req Request) (region.Region, error) {
	if req.PlaceID <= 0 {
		return region.Blank, ErrInvalidPlaceID
	}
	if req.ServerID == "" {
		return region.Blank, ErrInvalidServerID
	}

	claimed, err := uc.regions.PutIfAbsent(ctx, req.ServerID, region.Pending())
	if err != nil {
		return region.Blank, err
	}
	if !claimed {
		return uc.regions.Get(ctx, req.ServerID)
	}

	if err := uc.runner.Submit(func(taskCtx context.Context) {
		uc.resolve(taskCtx, req)
	}); err != nil {
		// release the claim so a later attempt can retry
		if removeErr := uc.regions.Remove(ctx, req.ServerID); removeErr != nil {
			uc.logger.Error().
				Err(removeErr).Str("server", req.ServerID).
				Msg("Unable to release region claim")
		}
		return region.Blank, err
	}

	return region.Pending(), nil
}

// Lookup returns the cached region for a server id. Ids absent from the
// cache, including ids from replaced scans, report ErrRegionNotFound.
func (uc UseCase) Lookup(ctx context.Context, serverID string) (region.Region, error) {
	if serverID == "" {
		return region.Blank, ErrInvalidServerID
	}
	return uc.regions.Get(ctx, serverID)
}

func (uc UseCase) resolve(ctx context.Context, req Request) {
	started := uc.clock.Now()
	uc.metrics.RegionProbes.Inc()

	label := uc.resolveLabel(ctx, req)

	if err := uc.regions.Put(ctx, req.ServerID, region.Resolved(label)); err != nil {
		uc.logger.Error().
			Err(err).Str("server", req.ServerID).
			Msg("Unable to store resolved region")
		return
	}

	uc.metrics.RegionProbeDurations.Observe(uc.clock.Since(started).Seconds())
	uc.logger.Debug().
		Str("server", req.ServerID).Str("region", label).
		Msg("Resolved server region")
}

// resolveLabel always produces a displayable label: a probe or geo
// failure degrades to fallback text instead of propagating.
func (uc UseCase) resolveLabel(ctx context.Context, req Request) string {
	targetPlaceID := req.PlaceID
	isTeleport := false
	if req.TeleportPlaceID != 0 {
		targetPlaceID = req.TeleportPlaceID
		isTeleport = true
	}

	result, err := uc.prober.JoinProbe(ctx, targetPlaceID, req.ServerID, isTeleport)
	if err != nil {
		uc.metrics.RegionProbeErrors.Inc()
		uc.logger.Warn().
			Err(err).Str("server", req.ServerID).Int64("place", targetPlaceID).
			Msg("Region probe failed")
		return fmt.Sprintf("unavailable (%s)", err)
	}

	if result.Declined() {
		if result.Message != "" {
			return result.Message
		}
		return fmt.Sprintf("declined (status %d)", result.Status)
	}

	place, err := uc.geo.Locate(ctx, result.MachineAddress)
	if err != nil {
		uc.metrics.RegionGeoFallbacks.Inc()
		uc.logger.Debug().
			Err(err).Str("server", req.ServerID).Str("address", result.MachineAddress).
			Msg("Geo lookup failed, falling back to the raw address")
		return result.MachineAddress
	}
	return place.Label()
}
