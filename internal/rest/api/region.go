package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placescout/placescout/internal/core/repositories"
	"github.com/placescout/placescout/internal/core/usecases/resolveregion"
	"github.com/placescout/placescout/internal/resolver"
	"github.com/placescout/placescout/internal/rest/model"
)

type ResolveRegionForm struct {
	PlaceID int64 `binding:"required" json:"place_id"`
}

// ResolveRegion triggers a region resolution for one server. A repeated
// trigger while the first resolution is loading is a no-op that returns
// the current cache entry.
func (a *API) ResolveRegion(c *gin.Context) {
	serverID := c.Param("serverId")

	var form ResolveRegionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, Error{Error: "Invalid request body"})
		return
	}
	if err := a.validate.Var(form.PlaceID, "placeid"); err != nil {
		c.JSON(http.StatusBadRequest, Error{Error: "Invalid place id"})
		return
	}

	req := resolveregion.NewRequest(form.PlaceID, serverID)
	if a.settings.TeleportPlaceID != 0 {
		req = resolveregion.NewTeleportRequest(form.PlaceID, serverID, a.settings.TeleportPlaceID)
	}

	reg, err := a.container.ResolveRegion.Execute(c, req)
	if err != nil {
		switch {
		case errors.Is(err, resolveregion.ErrInvalidServerID):
			c.JSON(http.StatusBadRequest, Error{Error: "Invalid server id"})
		case errors.Is(err, resolver.ErrQueueFull):
			c.JSON(http.StatusServiceUnavailable, Error{Error: "Too many resolutions in progress"})
		default:
			a.logger.Error().Err(err).Str("server", serverID).Msg("Failed to resolve region")
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	status := http.StatusOK
	if reg.Loading {
		status = http.StatusAccepted
	}
	c.JSON(status, model.NewRegionFromDomain(reg))
}

// GetRegion returns the cached region for a server id; ids that were
// never resolved, including ids from replaced scans, are absent.
func (a *API) GetRegion(c *gin.Context) {
	serverID := c.Param("serverId")

	reg, err := a.container.ResolveRegion.Lookup(c, serverID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrRegionNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, resolveregion.ErrInvalidServerID):
			c.JSON(http.StatusBadRequest, Error{Error: "Invalid server id"})
		default:
			a.logger.Error().Err(err).Str("server", serverID).Msg("Failed to look up region")
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, model.NewRegionFromDomain(reg))
}
