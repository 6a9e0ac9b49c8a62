package serverfactory

import (
	"fmt"
	"math/rand"

	"github.com/placescout/placescout/internal/core/entities/server"
)

type BuildParams struct {
	ID           string
	MaxPlayers   int
	Playing      int
	PlayerTokens []string
	FPS          float64
	Ping         int
	AccessCode   string
}

type BuildOption func(*BuildParams)

func WithID(id string) BuildOption {
	return func(p *BuildParams) {
		p.ID = id
	}
}

func WithOccupancy(maxPlayers, playing int) BuildOption {
	return func(p *BuildParams) {
		p.MaxPlayers = maxPlayers
		p.Playing = playing
	}
}

func WithPlayerTokens(tokens ...string) BuildOption {
	return func(p *BuildParams) {
		p.PlayerTokens = tokens
	}
}

func WithPing(ping int) BuildOption {
	return func(p *BuildParams) {
		p.Ping = ping
	}
}

func WithAccessCode(code string) BuildOption {
	return func(p *BuildParams) {
		p.AccessCode = code
	}
}

func Build(opts ...BuildOption) server.Server {
	params := BuildParams{
		ID:         fmt.Sprintf("instance-%08x", rand.Uint32()),
		MaxPlayers: 10,
		Playing:    rand.Intn(11),
		FPS:        60,
		Ping:       server.PingUnknown,
	}
	for _, opt := range opts {
		opt(&params)
	}
	return server.Server{
		ID:           params.ID,
		MaxPlayers:   params.MaxPlayers,
		Playing:      params.Playing,
		PlayerTokens: params.PlayerTokens,
		FPS:          params.FPS,
		Ping:         params.Ping,
		AccessCode:   params.AccessCode,
	}
}

func BuildMany(count int, opts ...BuildOption) []server.Server {
	servers := make([]server.Server, 0, count)
	for i := 0; i < count; i++ {
		servers = append(servers, Build(opts...))
	}
	return servers
}
