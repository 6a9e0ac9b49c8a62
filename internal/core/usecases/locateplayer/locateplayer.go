package locateplayer

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/placescout/placescout/internal/core/entities/locate"
	"github.com/placescout/placescout/internal/core/entities/page"
	"github.com/placescout/placescout/internal/core/entities/server"
	"github.com/placescout/placescout/internal/metrics"
	"github.com/placescout/placescout/internal/platform"
)

var (
	ErrInvalidPlaceID  = errors.New("place id must be a positive integer")
	ErrInvalidUsername = errors.New("username cannot be empty")
)

type PagingClient interface {
	ListServers(ctx context.Context, placeID int64, cursor string) (page.Page, error)
}

type IdentityClient interface {
	LookupUser(ctx context.Context, username string) (platform.User, error)
	Headshot(ctx context.Context, userID int64) (string, error)
}

type ThumbnailClient interface {
	Thumbnails(ctx context.Context, serverID string, tokens []string) ([]string, error)
}

type Request struct {
	PlaceID  int64
	Username string
}

func NewRequest(placeID int64, username string) Request {
	return Request{
		PlaceID:  placeID,
		Username: username,
	}
}

type Result struct {
	Outcome      locate.Outcome
	Server       server.Server
	PagesScanned int
}

// UseCase searches the paginated server set of a place for the one
// server hosting a named user. The only correlation signal available is
// the user's avatar thumbnail URL: each visited server's player tokens
// are resolved to thumbnails in one batch and compared for exact
// equality, first match wins.
type UseCase struct {
	pages    PagingClient
	identity IdentityClient
	thumbs   ThumbnailClient
	metrics  *metrics.Collector
	clock    clockwork.Clock
	logger   *zerolog.Logger
}

func New(
	pages PagingClient,
	identity IdentityClient,
	thumbs ThumbnailClient,
	collector *metrics.Collector,
	clock clockwork.Clock,
	logger *zerolog.Logger,
) UseCase {
	return UseCase{
		pages:    pages,
		identity: identity,
		thumbs:   thumbs,
		metrics:  collector,
		clock:    clock,
		logger:   logger,
	}
}

// Execute runs a locate session to completion. The walk is independent
// of any scan session: it drives its own cursor. The caller's context
// is honored at page boundaries, mirroring the scanner's cooperative
// cancellation.
func (uc UseCase) Execute(ctx context.Context, req Request) (Result, error) {
	if req.PlaceID <= 0 {
		return Result{}, ErrInvalidPlaceID
	}
	if req.Username == "" {
		return Result{}, ErrInvalidUsername
	}

	started := uc.clock.Now()
	sess := locate.New(req.PlaceID, req.Username, started)
	defer func() {
		uc.metrics.LocateSessions.WithLabelValues(outcomeLabel(sess.Outcome)).Inc()
		uc.metrics.LocateDurations.Observe(uc.clock.Since(started).Seconds())
	}()

	user, err := uc.identity.LookupUser(ctx, req.Username)
	if err != nil {
		uc.logger.Info().
			Err(err).Str("username", req.Username).
			Msg("Target user did not resolve")
		sess.Exhaust()
		return resultOf(sess), err
	}

	fingerprint, err := uc.identity.Headshot(ctx, user.ID)
	if err != nil {
		uc.logger.Warn().
			Err(err).Str("username", req.Username).Int64("user", user.ID).
			Msg("Unable to obtain target fingerprint")
		sess.Fail()
		return resultOf(sess), err
	}
	sess.Fingerprint = fingerprint

	uc.logger.Info().
		Int64("place", req.PlaceID).Str("username", req.Username).Int64("user", user.ID).
		Msg("Starting player search")

	cursor := ""
	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			sess.Fail()
			return resultOf(sess), ctxErr
		}

		pg, err := uc.pages.ListServers(ctx, req.PlaceID, cursor)
		if err != nil {
			uc.logger.Warn().
				Err(err).Int64("place", req.PlaceID).Int("pages", sess.PagesScanned).
				Msg("Player search page fetch failed")
			sess.Fail()
			return resultOf(sess), err
		}
		sess.VisitPage()
		uc.metrics.LocatePages.Inc()

		if match, found := uc.scanPage(ctx, sess, pg); found {
			sess.Find(match)
			uc.logger.Info().
				Int64("place", req.PlaceID).Str("username", req.Username).
				Stringer("server", match).Int("pages", sess.PagesScanned).
				Msg("Found player")
			return resultOf(sess), nil
		}

		if pg.IsLast() {
			sess.Exhaust()
			uc.logger.Info().
				Int64("place", req.PlaceID).Str("username", req.Username).
				Int("pages", sess.PagesScanned).
				Msg("Player not found on any server")
			return resultOf(sess), nil
		}
		cursor = pg.NextCursor
	}
}

// scanPage checks every server on a page, in upstream order, for a
// token resolving to the target fingerprint. A failed thumbnail batch
// only skips its server.
func (uc UseCase) scanPage(ctx context.Context, sess *locate.Session, pg page.Page) (server.Server, bool) {
	for _, svr := range pg.Servers {
		if !svr.HasPlayers() {
			continue
		}
		urls, err := uc.thumbs.Thumbnails(ctx, svr.ID, svr.PlayerTokens)
		if err != nil {
			uc.logger.Warn().
				Err(err).Stringer("server", svr).
				Msg("Skipping server with unresolvable thumbnails")
			continue
		}
		for _, imageURL := range urls {
			if imageURL != "" && imageURL == sess.Fingerprint {
				return svr, true
			}
		}
	}
	return server.Blank, false
}

func resultOf(sess *locate.Session) Result {
	return Result{
		Outcome:      sess.Outcome,
		Server:       sess.Match,
		PagesScanned: sess.PagesScanned,
	}
}

func outcomeLabel(outcome locate.Outcome) string {
	switch outcome {
	case locate.Found:
		return "found"
	case locate.NotFound:
		return "not_found"
	case locate.Errored:
		return "errored"
	default:
		return "pending"
	}
}
