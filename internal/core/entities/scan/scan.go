package scan

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/placescout/placescout/internal/core/entities/page"
	"github.com/placescout/placescout/internal/core/entities/server"
)

var ErrNotRunning = errors.New("scan session is not running")

type State int

const (
	Idle State = iota
	Running
	Cancelled
	Exhausted
	Errored
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Cancelled:
		return "Cancelled"
	case Exhausted:
		return "Exhausted"
	case Errored:
		return "Errored"
	default:
		return "Idle"
	}
}

// IsTerminal reports whether the session has finished for any reason
// and a subsequent start should create a fresh session.
func (s State) IsTerminal() bool {
	switch s {
	case Cancelled, Exhausted, Errored:
		return true
	default:
		return false
	}
}

// Session is one cancellable scan over the live server set of a place.
// Servers accumulate in upstream arrival order and only ever grow;
// cancellation, exhaustion and failure all preserve the accumulated set.
type Session struct {
	ID        uuid.UUID
	PlaceID   int64
	Cursor    string
	State     State
	Servers   []server.Server
	Pages     int
	StartedAt time.Time
}

func New(placeID int64, startedAt time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		PlaceID:   placeID,
		State:     Running,
		StartedAt: startedAt,
	}
}

func (s *Session) IsRunning() bool {
	return s.State == Running
}

// Advance merges one fetched page into the session: records are appended
// in arrival order without sorting or deduplication, as upstream
// guarantees distinct ids per page.
func (s *Session) Advance(pg page.Page) error {
	if !s.IsRunning() {
		return ErrNotRunning
	}
	s.Servers = append(s.Servers, pg.Servers...)
	s.Cursor = pg.NextCursor
	s.Pages++
	return nil
}

func (s *Session) Cancel() error {
	return s.finish(Cancelled)
}

func (s *Session) Exhaust() error {
	return s.finish(Exhausted)
}

func (s *Session) Fail() error {
	return s.finish(Errored)
}

func (s *Session) finish(state State) error {
	if !s.IsRunning() {
		return ErrNotRunning
	}
	s.State = state
	return nil
}
