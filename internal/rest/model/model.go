package model

import (
	"github.com/gosimple/slug"

	"github.com/placescout/placescout/internal/core/entities/locate"
	"github.com/placescout/placescout/internal/core/entities/region"
	"github.com/placescout/placescout/internal/core/entities/server"
	"github.com/placescout/placescout/internal/core/usecases/locateplayer"
	"github.com/placescout/placescout/internal/core/usecases/scanservers"
)

type Server struct {
	ID             string  `json:"id"`
	MaxPlayers     int     `json:"max_players"`
	Playing        int     `json:"playing"`
	FPS            float64 `json:"fps"`
	Ping           int     `json:"ping"`
	Private        bool    `json:"private"`
	PlayersVisible bool    `json:"players_visible"`
}

func NewServerFromDomain(svr server.Server) Server {
	return Server{
		ID:             svr.ID,
		MaxPlayers:     svr.MaxPlayers,
		Playing:        svr.Playing,
		FPS:            svr.FPS,
		Ping:           svr.Ping,
		Private:        svr.IsPrivate(),
		PlayersVisible: svr.HasPlayers(),
	}
}

func NewServerListFromDomain(servers []server.Server) []Server {
	result := make([]Server, 0, len(servers))
	for _, svr := range servers {
		result = append(result, NewServerFromDomain(svr))
	}
	return result
}

type Region struct {
	Label   string `json:"label"`
	Slug    string `json:"slug"`
	Loading bool   `json:"loading"`
}

func NewRegionFromDomain(reg region.Region) Region {
	return Region{
		Label:   reg.Label,
		Slug:    slug.Make(reg.Label),
		Loading: reg.Loading,
	}
}

type ScanStatus struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
	StateSlug string `json:"state_slug"`
	Pages     int    `json:"pages"`
	Servers   int    `json:"servers"`
}

func NewScanStatusFromDomain(status scanservers.Status) ScanStatus {
	state := status.State.String()
	return ScanStatus{
		SessionID: status.SessionID.String(),
		State:     state,
		StateSlug: slug.Make(state),
		Pages:     status.Pages,
		Servers:   status.Servers,
	}
}

type ScanProgress struct {
	State     string   `json:"state"`
	StateSlug string   `json:"state_slug"`
	Pages     int      `json:"pages"`
	Terminal  bool     `json:"terminal"`
	Servers   []Server `json:"servers"`
}

func NewScanProgressFromDomain(progress scanservers.Progress) ScanProgress {
	state := progress.State.String()
	return ScanProgress{
		State:     state,
		StateSlug: slug.Make(state),
		Pages:     progress.Pages,
		Terminal:  progress.State.IsTerminal(),
		Servers:   NewServerListFromDomain(progress.Servers),
	}
}

type LocateResult struct {
	Outcome      string  `json:"outcome"`
	OutcomeSlug  string  `json:"outcome_slug"`
	PagesScanned int     `json:"pages_scanned"`
	Server       *Server `json:"server,omitempty"`
}

func NewLocateResultFromDomain(result locateplayer.Result) LocateResult {
	outcome := result.Outcome.String()
	model := LocateResult{
		Outcome:      outcome,
		OutcomeSlug:  slug.Make(outcome),
		PagesScanned: result.PagesScanned,
	}
	if result.Outcome == locate.Found {
		svr := NewServerFromDomain(result.Server)
		model.Server = &svr
	}
	return model
}
