package cinemas

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCinemaRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - browsing cinemas and room layouts
	public := router.Group("/cinemas")
	{
		public.GET("", controller.ListCinemas)
		public.GET("/:id", controller.GetCinema)
	}
	router.GET("/rooms/:id/layout", controller.GetRoomLayout)

	// Back-office routes - cinema and room management
	manage := router.Group("/manage")
	manage.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		manage.POST("/cinemas", controller.CreateCinema)
		manage.PUT("/cinemas/:id", controller.UpdateCinema)
		manage.DELETE("/cinemas/:id", controller.DeleteCinema)
		manage.POST("/cinemas/:id/rooms", controller.CreateRoom)
		manage.PUT("/rooms/:id", controller.UpdateRoom)
		manage.DELETE("/rooms/:id", controller.DeleteRoom)
	}
}
