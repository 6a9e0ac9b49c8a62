package server_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placescout/placescout/internal/core/entities/server"
)

func TestServer_New(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		maxPlayers int
		playing    int
		wantErr    error
	}{
		{"positional arguments are valid", "7f3c0e2a", 10, 5, nil},
		{"empty server is valid", "7f3c0e2a", 10, 0, nil},
		{"overfull server is valid", "7f3c0e2a", 10, 12, nil},
		{"empty id is not valid", "", 10, 5, server.ErrEmptyID},
		{"negative max players is not valid", "7f3c0e2a", -1, 5, server.ErrInvalidOccupancy},
		{"negative playing is not valid", "7f3c0e2a", 10, -5, server.ErrInvalidOccupancy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svr, err := server.New(tt.id, tt.maxPlayers, tt.playing)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, server.Blank, svr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, svr.ID)
			assert.Equal(t, server.PingUnknown, svr.Ping)
			assert.Empty(t, svr.PlayerTokens)
		})
	}
}

func TestServer_IsPrivate(t *testing.T) {
	svr := server.MustNew("7f3c0e2a", 10, 5)
	assert.False(t, svr.IsPrivate())

	svr.AccessCode = "c8f2a1d0-9b3e-4f2c-8d1a-5e6f7a8b9c0d"
	assert.True(t, svr.IsPrivate())
}

func TestServer_HasPlayers(t *testing.T) {
	svr := server.MustNew("7f3c0e2a", 10, 2)
	assert.False(t, svr.HasPlayers())

	svr.PlayerTokens = []string{"tok1", "tok2"}
	assert.True(t, svr.HasPlayers())
}
