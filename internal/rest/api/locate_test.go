package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/placescout/placescout/internal/platform"
	"github.com/placescout/placescout/internal/testutils"
)

type locateResultSchema struct {
	Outcome      string        `json:"outcome"`
	OutcomeSlug  string        `json:"outcome_slug"`
	PagesScanned int           `json:"pages_scanned"`
	Server       *serverSchema `json:"server"`
}

// locatePlatform serves the fixed upstream exchange of a player search:
// username lookup, headshot fingerprint, one listing page and one
// thumbnail batch where the second token matches the fingerprint.
func locatePlatform(t *testing.T, username string) fx.Option {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/usernames/users", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Usernames []string `json:"usernames"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Usernames) == 1 && body.Usernames[0] == username {
			w.Write([]byte(`{"data": [{"id": 1001, "name": "` + username + `"}]}`))
			return
		}
		w.Write([]byte(`{"data": []}`))
	})
	mux.HandleFunc("/v1/users/avatar-headshot", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": [{"targetId": 1001, "imageUrl": "https://cdn.example.com/alice.png"}]}`))
	})
	mux.HandleFunc("/v1/batch", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": [
			{"requestId": "job-1:0", "imageUrl": "https://cdn.example.com/bob.png"},
			{"requestId": "job-1:1", "imageUrl": "https://cdn.example.com/alice.png"}
		]}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"data": [{"id": "job-1", "maxPlayers": 10, "playing": 2, "playerTokens": ["t1", "t2"], "fps": 60}],
			"nextPageCursor": null
		}`))
	})
	upstream := httptest.NewServer(mux)
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

func locateBody(t *testing.T, username string) *bytes.Reader {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"username": username})
	require.NoError(t, err)
	return bytes.NewReader(payload)
}

func TestAPI_LocatePlayer_Found(t *testing.T) {
	ts, cancel := testutils.PrepareTestServer(t, locatePlatform(t, "alice"))
	defer cancel()

	var result locateResultSchema
	resp := testutils.DoTestRequest(
		ts, http.MethodPost, "/api/places/1000/locate", locateBody(t, "alice"),
		testutils.MustBindJSON(&result),
	)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "found", result.OutcomeSlug)
	assert.Equal(t, 1, result.PagesScanned)
	require.NotNil(t, result.Server)
	assert.Equal(t, "job-1", result.Server.ID)
}

func TestAPI_LocatePlayer_UnknownUser(t *testing.T) {
	ts, cancel := testutils.PrepareTestServer(t, locatePlatform(t, "alice"))
	defer cancel()

	var result locateResultSchema
	resp := testutils.DoTestRequest(
		ts, http.MethodPost, "/api/places/1000/locate", locateBody(t, "nobody"),
		testutils.MustBindJSON(&result),
	)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "not-found", result.OutcomeSlug)
	assert.Nil(t, result.Server)
}

func TestAPI_LocatePlayer_InvalidBody(t *testing.T) {
	ts, cancel := testutils.PrepareTestServer(t)
	defer cancel()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"not json", `not json`},
		{"missing username", `{}`},
		{"blank username", `{"username": ""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutils.DoTestRequest(
				ts, http.MethodPost, "/api/places/1000/locate", bytes.NewReader([]byte(tt.body)),
			)
			assert.Equal(t, 400, resp.StatusCode)
		})
	}
}

func TestAPI_LocatePlayer_InvalidPlaceID(t *testing.T) {
	ts, cancel := testutils.PrepareTestServer(t)
	defer cancel()

	resp := testutils.DoTestRequest(
		ts, http.MethodPost, "/api/places/abc/locate", locateBody(t, "alice"),
	)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestAPI_LocatePlayer_UpstreamUnavailable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(upstream.Close)

	ts, cancel := testutils.PrepareTestServer(t, fx.Replace(platform.Config{
		GamesBaseURL:      upstream.URL,
		ThumbnailsBaseURL: upstream.URL,
		UsersBaseURL:      upstream.URL,
		JoinBaseURL:       upstream.URL,
		PageLimit:         100,
		FingerprintSize:   "48x48",
		RequestsPerSecond: 1000,
		Burst:             1000,
	}))
	defer cancel()

	resp := testutils.DoTestRequest(
		ts, http.MethodPost, "/api/places/1000/locate", locateBody(t, "alice"),
	)
	assert.Equal(t, 502, resp.StatusCode)
}
