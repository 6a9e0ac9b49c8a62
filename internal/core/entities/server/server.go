package server

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyID          = errors.New("server id cannot be empty")
	ErrInvalidOccupancy = errors.New("server occupancy cannot be negative")
)

const PingUnknown = -1

// Server is a single observed server instance of a place.
// Instances are ephemeral: the id is unique within one scan
// but carries no identity across scans.
type Server struct {
	ID           string
	MaxPlayers   int
	Playing      int
	PlayerTokens []string
	FPS          float64
	Ping         int
	AccessCode   string
}

var Blank Server // nolint: gochecknoglobals

func New(id string, maxPlayers, playing int) (Server, error) {
	if id == "" {
		return Blank, ErrEmptyID
	}
	if maxPlayers < 0 || playing < 0 {
		return Blank, ErrInvalidOccupancy
	}
	return Server{
		ID:         id,
		MaxPlayers: maxPlayers,
		Playing:    playing,
		Ping:       PingUnknown,
	}, nil
}

func MustNew(id string, maxPlayers, playing int) Server {
	svr, err := New(id, maxPlayers, playing)
	if err != nil {
		panic(err)
	}
	return svr
}

// IsPrivate reports whether the instance requires an access code to join,
// which changes how a join request is framed.
func (s *Server) IsPrivate() bool {
	return s.AccessCode != ""
}

// HasPlayers reports whether the instance exposes any player tokens.
// Servers that redact their players return an empty token list.
func (s *Server) HasPlayers() bool {
	return len(s.PlayerTokens) > 0
}

func (s Server) String() string {
	return fmt.Sprintf("%s (%d/%d)", s.ID, s.Playing, s.MaxPlayers)
}
