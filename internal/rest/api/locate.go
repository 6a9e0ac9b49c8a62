package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placescout/placescout/internal/core/usecases/locateplayer"
	"github.com/placescout/placescout/internal/platform"
	"github.com/placescout/placescout/internal/rest/model"
)

type LocatePlayerForm struct {
	Username string `binding:"required,max=50" json:"username"`
}

// LocatePlayer searches the place's servers for the one hosting the
// named user. The search runs to a terminal outcome within the request.
func (a *API) LocatePlayer(c *gin.Context) {
	placeID, ok := a.placeIDParam(c)
	if !ok {
		return
	}

	var form LocatePlayerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, Error{Error: "Invalid request body"})
		return
	}

	ucRequest := locateplayer.NewRequest(placeID, form.Username)
	result, err := a.container.LocatePlayer.Execute(c, ucRequest)
	if err != nil {
		switch {
		case errors.Is(err, locateplayer.ErrInvalidUsername), errors.Is(err, locateplayer.ErrInvalidPlaceID):
			c.JSON(http.StatusBadRequest, Error{Error: "Invalid search request"})
			return
		case errors.Is(err, platform.ErrUserNotFound):
			// the search never started, report it like an exhausted one
		default:
			a.logger.Warn().
				Err(err).Int64("place", placeID).Str("username", form.Username).
				Msg("Player search failed")
			c.JSON(http.StatusBadGateway, Error{Error: "Player search failed"})
			return
		}
	}

	c.JSON(http.StatusOK, model.NewLocateResultFromDomain(result))
}
