package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/placescout/placescout/internal/core/entities/page"
	"github.com/placescout/placescout/internal/core/entities/server"
)

type listedServer struct {
	ID           string   `json:"id"`
	MaxPlayers   int      `json:"maxPlayers"`
	Playing      int      `json:"playing"`
	PlayerTokens []string `json:"playerTokens"`
	FPS          float64  `json:"fps"`
	Ping         *int     `json:"ping"`
	AccessCode   string   `json:"accessCode"`
}

type listServersResponse struct {
	Data           []listedServer `json:"data"`
	NextPageCursor *string        `json:"nextPageCursor"`
}

// ListServers fetches one page of the public server listing for a place.
// An empty cursor requests the first page; an empty NextCursor on the
// returned page means the listing is exhausted.
func (c *Client) ListServers(ctx context.Context, placeID int64, cursor string) (page.Page, error) {
	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", c.cfg.PageLimit))
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	endpoint := fmt.Sprintf("%s/v1/games/%d/servers/Public?%s", c.cfg.GamesBaseURL, placeID, query.Encode())

	var resp listServersResponse
	if err := c.call(ctx, "list_servers", http.MethodGet, endpoint, nil, &resp); err != nil {
		return page.Page{}, err
	}

	servers := make([]server.Server, 0, len(resp.Data))
	for _, listed := range resp.Data {
		svr := server.Server{
			ID:           listed.ID,
			MaxPlayers:   listed.MaxPlayers,
			Playing:      listed.Playing,
			PlayerTokens: listed.PlayerTokens,
			FPS:          listed.FPS,
			Ping:         server.PingUnknown,
			AccessCode:   listed.AccessCode,
		}
		if listed.Ping != nil {
			svr.Ping = *listed.Ping
		}
		servers = append(servers, svr)
	}

	nextCursor := ""
	if resp.NextPageCursor != nil {
		nextCursor = *resp.NextPageCursor
	}
	return page.New(servers, nextCursor), nil
}
