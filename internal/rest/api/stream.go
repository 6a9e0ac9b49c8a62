package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/placescout/placescout/internal/rest/model"
)

const streamWriteTimeout = time.Second * 10

var upgrader = websocket.Upgrader{ // nolint: gochecknoglobals
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// StreamScan upgrades the request to a websocket and feeds the consumer
// scan progress frames for the place until the session reaches a
// terminal state or the consumer goes away.
func (a *API) StreamScan(c *gin.Context) {
	placeID, ok := a.placeIDParam(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.logger.Warn().Err(err).Int64("place", placeID).Msg("Unable to upgrade scan stream")
		return
	}
	defer conn.Close()

	updates, unsubscribe := a.container.ScanServers.Subscribe(placeID)
	defer unsubscribe()

	// surface the current state right away, so a consumer attaching
	// mid-scan does not wait for the next page to merge
	if status, running := a.container.ScanServers.Current(placeID); running {
		if writeErr := a.writeFrame(conn, model.NewScanStatusFromDomain(status)); writeErr != nil {
			return
		}
	}

	for {
		select {
		case progress := <-updates:
			frame := model.NewScanProgressFromDomain(progress)
			if writeErr := a.writeFrame(conn, frame); writeErr != nil {
				return
			}
			if frame.Terminal {
				return
			}
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (a *API) writeFrame(conn *websocket.Conn, frame any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout)); err != nil {
		return err
	}
	if err := conn.WriteJSON(frame); err != nil {
		a.logger.Debug().Err(err).Msg("Scan stream consumer went away")
		return err
	}
	return nil
}
