package locate

import (
	"time"

	"github.com/google/uuid"

	"github.com/placescout/placescout/internal/core/entities/server"
)

type Outcome int

const (
	Pending Outcome = iota
	Found
	NotFound
	Errored
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "Found"
	case NotFound:
		return "Not Found"
	case Errored:
		return "Errored"
	default:
		return "Pending"
	}
}

// Session is one search for the server currently hosting a user.
// The target is identified solely by its avatar thumbnail fingerprint,
// since per-server player tokens expose no richer identity signal.
type Session struct {
	ID           uuid.UUID
	PlaceID      int64
	Username     string
	Fingerprint  string
	PagesScanned int
	Outcome      Outcome
	Match        server.Server
	StartedAt    time.Time
}

func New(placeID int64, username string, startedAt time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		PlaceID:   placeID,
		Username:  username,
		StartedAt: startedAt,
	}
}

func (s *Session) VisitPage() {
	s.PagesScanned++
}

// Find settles the session on the first matching server;
// no further pages are fetched past this point.
func (s *Session) Find(svr server.Server) {
	s.Match = svr
	s.Outcome = Found
}

func (s *Session) Exhaust() {
	s.Outcome = NotFound
}

func (s *Session) Fail() {
	s.Outcome = Errored
}
