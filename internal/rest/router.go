package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/placescout/placescout/internal/rest/api"
)

func NewRouter(a *api.API) *gin.Engine {
	router := gin.Default()
	router.GET("/status", a.Status)
	router.POST("/api/places/:placeId/scan", a.ToggleScan)
	router.GET("/api/places/:placeId/scan/stream", a.StreamScan)
	router.GET("/api/places/:placeId/servers", a.ListServers)
	router.POST("/api/places/:placeId/locate", a.LocatePlayer)
	router.POST("/api/servers/:serverId/region", a.ResolveRegion)
	router.GET("/api/servers/:serverId/region", a.GetRegion)
	return router
}
