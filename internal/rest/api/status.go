package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placescout/placescout/cmd/placescout/build"
)

func (a *API) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": build.Version,
		"commit":  build.Commit,
		"built":   build.Time,
	})
}
