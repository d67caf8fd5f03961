package showtimes

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupShowtimeRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - browsing showtimes
	public := router.Group("/showtimes")
	{
		public.GET("", controller.ListShowtimes)
		public.GET("/:id", controller.GetShowtime)
	}

	// Back-office routes - showtime management
	manage := router.Group("/manage/showtimes")
	manage.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		manage.POST("", controller.CreateShowtime)
		manage.PUT("/:id", controller.UpdateShowtime)
		manage.DELETE("/:id", controller.DeleteShowtime)
	}
}
