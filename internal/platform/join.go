package platform

import (
	"context"
	"fmt"
	"net/http"
)

// JoinResult is the outcome of a join-instance probe. A declined probe
// is a normal outcome: MachineAddress is empty and Message carries the
// upstream's explanation.
type JoinResult struct {
	MachineAddress string
	Status         int
	Message        string
}

func (r JoinResult) Declined() bool {
	return r.MachineAddress == ""
}

type joinRequest struct {
	PlaceID    int64  `json:"placeId"`
	GameID     string `json:"gameId"`
	IsTeleport bool   `json:"isTeleport"`
}

type joinResponse struct {
	Status     int    `json:"status"`
	Message    string `json:"message"`
	JoinScript *struct {
		MachineAddress string `json:"MachineAddress"`
	} `json:"joinScript"`
}

// JoinProbe asks the platform for the join script of a specific server
// instance without actually joining, to learn its transient network
// address. The probe is issued on behalf of the configured viewer.
func (c *Client) JoinProbe(ctx context.Context, placeID int64, serverID string, isTeleport bool) (JoinResult, error) {
	endpoint := fmt.Sprintf("%s/v1/join-game-instance", c.cfg.JoinBaseURL)
	payload := joinRequest{
		PlaceID:    placeID,
		GameID:     serverID,
		IsTeleport: isTeleport,
	}

	var resp joinResponse
	if err := c.call(ctx, "join_probe", http.MethodPost, endpoint, payload, &resp); err != nil {
		return JoinResult{}, err
	}

	result := JoinResult{
		Status:  resp.Status,
		Message: resp.Message,
	}
	if resp.JoinScript != nil {
		result.MachineAddress = resp.JoinScript.MachineAddress
	}
	return result, nil
}
