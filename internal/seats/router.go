package seats

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public route - live seat map for a showtime
	router.GET("/showtimes/:id/seats", controller.GetSeatMap)

	// Authenticated routes - holding seats ahead of checkout
	hold := router.Group("/seats")
	hold.Use(middleware.JWTAuth())
	{
		hold.POST("/hold", controller.HoldSeats)
		hold.DELETE("/hold/:holdId", controller.ReleaseHold)
	}
}
