package loyalty

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLoyaltyRoutes(router *gin.RouterGroup, controller *Controller) {
	group := router.Group("/loyalty")
	group.Use(middleware.JWTAuth())
	{
		group.GET("/account", controller.GetAccount)
		group.GET("/history", controller.GetHistory)
	}
}
