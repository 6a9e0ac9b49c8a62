package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/placescout/placescout/internal/core/entities/server"
	"github.com/placescout/placescout/internal/platform"
	"github.com/placescout/placescout/internal/testutils"
	"github.com/placescout/placescout/internal/testutils/factories/serverfactory"
)

type scanStatusSchema struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
	StateSlug string `json:"state_slug"`
	Pages     int    `json:"pages"`
	Servers   int    `json:"servers"`
}

type serverSchema struct {
	ID             string  `json:"id"`
	MaxPlayers     int     `json:"max_players"`
	Playing        int     `json:"playing"`
	FPS            float64 `json:"fps"`
	Ping           int     `json:"ping"`
	Private        bool    `json:"private"`
	PlayersVisible bool    `json:"players_visible"`
}

// fakePlatform serves a static one-page server listing.
func fakePlatform(t *testing.T) fx.Option {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": [
				{"id": "job-1", "maxPlayers": 10, "playing": 3, "playerTokens": ["t1"], "fps": 60},
				{"id": "job-2", "maxPlayers": 10, "playing": 0, "fps": 60}
			],
			"nextPageCursor": null
		}`))
	}))
	t.Cleanup(upstream.Close)
	return fx.Replace(platform.Config{
		GamesBaseURL:      upstream.URL,
		ThumbnailsBaseURL: upstream.URL,
		UsersBaseURL:      upstream.URL,
		JoinBaseURL:       upstream.URL,
		PageLimit:         100,
		FingerprintSize:   "48x48",
		RequestsPerSecond: 1000,
		Burst:             1000,
	})
}

func TestAPI_ToggleScan_StartAndObserve(t *testing.T) {
	ts, cancel := testutils.PrepareTestServer(t, fakePlatform(t))
	defer cancel()

	var status scanStatusSchema
	resp := testutils.DoTestRequest(
		ts, http.MethodPost, "/api/places/1000/scan", nil,
		testutils.MustBindJSON(&status),
	)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "running", status.StateSlug)
	assert.NotEmpty(t, status.SessionID)

	// the one-page walk finishes on its own
	assert.Eventually(t, func() bool {
		var servers []serverSchema
		listResp := testutils.DoTestRequest(
			ts, http.MethodGet, "/api/places/1000/servers", nil,
			testutils.MustBindJSON(&servers),
		)
		return listResp.StatusCode == 200 && len(servers) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestAPI_ToggleScan_InvalidPlaceID(t *testing.T) {
	ts, cancel := testutils.PrepareTestServer(t)
	defer cancel()

	for _, placeID := range []string{"abc", "0", "-1"} {
		resp := testutils.DoTestRequest(ts, http.MethodPost, "/api/places/"+placeID+"/scan", nil)
		assert.Equal(t, 400, resp.StatusCode)
	}
}

func TestAPI_ListServers_NeverScanned(t *testing.T) {
	ts, cancel := testutils.PrepareTestServer(t)
	defer cancel()

	var servers []serverSchema
	resp := testutils.DoTestRequest(
		ts, http.MethodGet, "/api/places/1000/servers", nil,
		testutils.MustBindJSON(&servers),
	)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, servers)
}

func TestAPI_ListServers_ReturnsStoredSnapshot(t *testing.T) {
	ts, repos, cancel := testutils.PrepareTestServerWithRepos(t)
	defer cancel()

	seedSnapshot(t, repos, 1000)

	var servers []serverSchema
	resp := testutils.DoTestRequest(
		ts, http.MethodGet, "/api/places/1000/servers", nil,
		testutils.MustBindJSON(&servers),
	)
	assert.Equal(t, 200, resp.StatusCode)
	require.Len(t, servers, 2)
	assert.Equal(t, "job-1", servers[0].ID)
	assert.True(t, servers[1].Private)
}

// seedSnapshot stores a two-server snapshot for the place; the second
// server advertises an access code, making it private.
func seedSnapshot(t *testing.T, repos testutils.TestServerRepositories, placeID int64) {
	t.Helper()
	servers := []server.Server{
		serverfactory.Build(
			serverfactory.WithID("job-1"),
			serverfactory.WithOccupancy(10, 7),
		),
		serverfactory.Build(
			serverfactory.WithID("job-2"),
			serverfactory.WithAccessCode("secret"),
		),
	}
	require.NoError(t, repos.Snapshots.Put(context.TODO(), placeID, servers))
}
