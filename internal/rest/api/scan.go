package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/placescout/placescout/internal/core/usecases/getsnapshot"
	"github.com/placescout/placescout/internal/core/usecases/scanservers"
	"github.com/placescout/placescout/internal/rest/model"
)

// ToggleScan starts a scan for the place, or cancels the one already
// running, mirroring a combined Refresh/Stop control.
func (a *API) ToggleScan(c *gin.Context) {
	placeID, ok := a.placeIDParam(c)
	if !ok {
		return
	}

	status, err := a.container.ScanServers.Toggle(c, placeID)
	if err != nil {
		switch {
		case errors.Is(err, scanservers.ErrInvalidPlaceID):
			c.JSON(http.StatusBadRequest, Error{Error: "Invalid place id"})
		default:
			a.logger.Error().Err(err).Int64("place", placeID).Msg("Failed to toggle scan")
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, model.NewScanStatusFromDomain(status))
}

// ListServers returns the latest snapshot for the place; a place that
// was never scanned simply yields an empty list.
func (a *API) ListServers(c *gin.Context) {
	placeID, ok := a.placeIDParam(c)
	if !ok {
		return
	}

	servers, err := a.container.GetSnapshot.Execute(c, placeID)
	if err != nil {
		if !errors.Is(err, getsnapshot.ErrNoSnapshot) {
			a.logger.Error().Err(err).Int64("place", placeID).Msg("Failed to obtain snapshot")
			c.Status(http.StatusInternalServerError)
			return
		}
		servers = nil
	}

	c.JSON(http.StatusOK, model.NewServerListFromDomain(servers))
}

func (a *API) placeIDParam(c *gin.Context) (int64, bool) {
	placeID, err := strconv.ParseInt(c.Param("placeId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Error{Error: "Invalid place id"})
		return 0, false
	}
	if err := a.validate.Var(placeID, "placeid"); err != nil {
		c.JSON(http.StatusBadRequest, Error{Error: "Invalid place id"})
		return 0, false
	}
	return placeID, true
}
