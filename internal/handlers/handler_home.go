package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getUp godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Router /up [get]
func getUp(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func registerHomeRoutes(group *gin.RouterGroup) {
	group.GET("/up", getUp)
}
