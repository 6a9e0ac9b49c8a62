package scanservers

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/placescout/placescout/internal/core/entities/page"
	"github.com/placescout/placescout/internal/core/entities/scan"
	"github.com/placescout/placescout/internal/core/entities/server"
	"github.com/placescout/placescout/internal/core/repositories"
	"github.com/placescout/placescout/internal/metrics"
)

var (
	ErrInvalidPlaceID = errors.New("place id must be a positive integer")
	ErrScanInProgress = errors.New("a scan is already running for this place")
	ErrNoActiveScan   = errors.New("no scan is running for this place")
)

type PagingClient interface {
	ListServers(ctx context.Context, placeID int64, cursor string) (page.Page, error)
}

// Progress is one observable step of a scan session: the accumulated
// server set after a merged page, or a terminal state notification.
type Progress struct {
	State   scan.State
	Servers []server.Server
	Pages   int
}

type Status struct {
	SessionID uuid.UUID
	State     scan.State
	Pages     int
	Servers   int
}

type subscriber struct {
	id      int
	updates chan Progress
}

type run struct {
	session *scan.Session
	done    chan struct{}
}

// UseCase owns at most one running scan session per place. A running
// session walks listing pages strictly sequentially, merging each page
// into the session and republishing the snapshot, until the cursor is
// exhausted, the session is cancelled, or a page fetch fails.
// Cancellation is cooperative: it is honored at the next page boundary
// and never aborts an in-flight request.
type UseCase struct {
	client    PagingClient
	snapshots repositories.SnapshotRepository
	metrics   *metrics.Collector
	clock     clockwork.Clock
	logger    *zerolog.Logger

	mutex       sync.Mutex
	runs        map[int64]*run
	subscribers map[int64][]subscriber
	nextSubID   int
}

func New(
	client PagingClient,
	snapshots repositories.SnapshotRepository,
	collector *metrics.Collector,
	clock clockwork.Clock,
	logger *zerolog.Logger,
) *UseCase {
	return &UseCase{
		client:      client,
		snapshots:   snapshots,
		metrics:     collector,
		clock:       clock,
		logger:      logger,
		runs:        make(map[int64]*run),
		subscribers: make(map[int64][]subscriber),
	}
}

// Toggle mirrors a combined "Refresh/Stop" control: it cancels the
// running scan for the place, or starts a new one when none is running.
// Both transitions remain available separately as Cancel and Start.
func (uc *UseCase) Toggle(ctx context.Context, placeID int64) (Status, error) {
	status, err := uc.Cancel(ctx, placeID)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, ErrNoActiveScan) {
		return Status{}, err
	}
	return uc.Start(ctx, placeID)
}

// Start validates the place id and launches a new scan session.
// Invalid input is rejected before any request is issued.
func (uc *UseCase) Start(ctx context.Context, placeID int64) (Status, error) {
	if placeID <= 0 {
		return Status{}, ErrInvalidPlaceID
	}

	uc.mutex.Lock()
	if _, active := uc.runs[placeID]; active {
		uc.mutex.Unlock()
		return Status{}, ErrScanInProgress
	}
	sess := scan.New(placeID, uc.clock.Now())
	r := &run{
		session: sess,
		done:    make(chan struct{}),
	}
	uc.runs[placeID] = r
	status := statusOf(sess)
	uc.mutex.Unlock()

	// the previous snapshot belongs to a replaced set of ephemeral ids
	if err := uc.snapshots.Clear(ctx, placeID); err != nil {
		uc.logger.Warn().Err(err).Int64("place", placeID).Msg("Unable to clear previous snapshot")
	}

	uc.metrics.ScanSessionsActive.Inc()
	uc.logger.Info().
		Int64("place", placeID).Stringer("session", sess.ID).
		Msg("Starting server scan")

	go uc.walk(r)

	return status, nil
}

// Cancel requests a cooperative stop of the running scan. The already
// accumulated servers are preserved; the walk stops before issuing the
// next page fetch.
func (uc *UseCase) Cancel(_ context.Context, placeID int64) (Status, error) {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	r, active := uc.runs[placeID]
	if !active {
		return Status{}, ErrNoActiveScan
	}
	if err := r.session.Cancel(); err != nil {
		return Status{}, err
	}

	uc.logger.Info().
		Int64("place", placeID).Stringer("session", r.session.ID).
		Int("pages", r.session.Pages).Int("servers", len(r.session.Servers)).
		Msg("Cancelling server scan")

	return statusOf(r.session), nil
}

// Current reports the status of the running session for a place, if any.
func (uc *UseCase) Current(placeID int64) (Status, bool) {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()
	r, active := uc.runs[placeID]
	if !active {
		return Status{}, false
	}
	return statusOf(r.session), true
}

// Subscribe returns a feed of scan progress for a place along with an
// unsubscribe function. Slow consumers miss intermediate updates rather
// than blocking the scan.
func (uc *UseCase) Subscribe(placeID int64) (<-chan Progress, func()) {
	uc.mutex.Lock()
	defer uc.mutex.Unlock()

	uc.nextSubID++
	sub := subscriber{
		id:      uc.nextSubID,
		updates: make(chan Progress, 1),
	}
	uc.subscribers[placeID] = append(uc.subscribers[placeID], sub)

	unsubscribe := func() {
		uc.mutex.Lock()
		defer uc.mutex.Unlock()
		subs := uc.subscribers[placeID]
		for i, s := range subs {
			if s.id == sub.id {
				uc.subscribers[placeID] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
	return sub.updates, unsubscribe
}

// Wait blocks until the running scan for a place reaches a terminal
// state. It returns immediately when no scan is running.
func (uc *UseCase) Wait(placeID int64) {
	uc.mutex.Lock()
	r, active := uc.runs[placeID]
	uc.mutex.Unlock()
	if !active {
		return
	}
	<-r.done
}

func (uc *UseCase) walk(r *run) {
	// the session deliberately outlives the request that started it;
	// stopping is governed by the session state, not a caller context
	ctx := context.Background()

	defer close(r.done)

	for {
		uc.mutex.Lock()
		running := r.session.IsRunning()
		cursor := r.session.Cursor
		placeID := r.session.PlaceID
		uc.mutex.Unlock()

		if !running {
			uc.finish(r, scan.Cancelled)
			return
		}

		pg, err := uc.client.ListServers(ctx, placeID, cursor)
		if err != nil {
			uc.logger.Warn().
				Err(err).Int64("place", placeID).Stringer("session", r.session.ID).
				Msg("Server scan page fetch failed")
			uc.mutex.Lock()
			_ = r.session.Fail()
			uc.mutex.Unlock()
			uc.finish(r, scan.Errored)
			return
		}

		uc.mutex.Lock()
		if mergeErr := r.session.Advance(pg); mergeErr != nil {
			// cancelled while the request was in flight, drop the page
			uc.mutex.Unlock()
			uc.finish(r, scan.Cancelled)
			return
		}
		exhausted := pg.IsLast()
		if exhausted {
			_ = r.session.Exhaust()
		}
		progress := progressOf(r.session)
		uc.mutex.Unlock()

		uc.metrics.ScanPages.Inc()
		uc.metrics.ScanServers.Add(float64(len(pg.Servers)))

		if exhausted {
			// finish publishes the terminal snapshot
			uc.finish(r, scan.Exhausted)
			return
		}

		uc.publish(ctx, placeID, progress)
	}
}

func (uc *UseCase) publish(ctx context.Context, placeID int64, progress Progress) {
	if err := uc.snapshots.Put(ctx, placeID, progress.Servers); err != nil {
		uc.logger.Error().Err(err).Int64("place", placeID).Msg("Unable to store scan snapshot")
	}

	uc.mutex.Lock()
	subs := make([]subscriber, len(uc.subscribers[placeID]))
	copy(subs, uc.subscribers[placeID])
	uc.mutex.Unlock()

	for _, sub := range subs {
		select {
		case sub.updates <- progress:
		default:
			// drop a stale update the consumer has not read yet
			select {
			case <-sub.updates:
			default:
			}
			select {
			case sub.updates <- progress:
			default:
			}
		}
	}
}

func (uc *UseCase) finish(r *run, state scan.State) {
	uc.mutex.Lock()
	progress := progressOf(r.session)
	uc.mutex.Unlock()

	uc.metrics.ScanSessionsActive.Dec()
	uc.metrics.ScanSessions.WithLabelValues(outcomeLabel(state)).Inc()

	uc.logger.Info().
		Int64("place", r.session.PlaceID).Stringer("session", r.session.ID).
		Stringer("state", state).Int("pages", progress.Pages).Int("servers", len(progress.Servers)).
		Msg("Server scan finished")

	uc.publish(context.Background(), r.session.PlaceID, progress)

	// release the place only after the terminal snapshot is visible
	uc.mutex.Lock()
	delete(uc.runs, r.session.PlaceID)
	uc.mutex.Unlock()
}

func statusOf(sess *scan.Session) Status {
	return Status{
		SessionID: sess.ID,
		State:     sess.State,
		Pages:     sess.Pages,
		Servers:   len(sess.Servers),
	}
}

func progressOf(sess *scan.Session) Progress {
	servers := make([]server.Server, len(sess.Servers))
	copy(servers, sess.Servers)
	return Progress{
		State:   sess.State,
		Servers: servers,
		Pages:   sess.Pages,
	}
}

func outcomeLabel(state scan.State) string {
	switch state {
	case scan.Cancelled:
		return "cancelled"
	case scan.Exhausted:
		return "exhausted"
	case scan.Errored:
		return "errored"
	default:
		return "unknown"
	}
}
