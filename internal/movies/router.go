package movies

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupMovieRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - browsing the catalogue
	public := router.Group("/movies")
	{
		public.GET("", controller.ListMovies)
		public.GET("/now-showing", controller.GetNowShowing)
		public.GET("/coming-soon", controller.GetComingSoon)
		public.GET("/:id", controller.GetMovie)
	}

	// Back-office routes - movie management
	manage := router.Group("/manage/movies")
	manage.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		manage.POST("", controller.CreateMovie)
		manage.PUT("/:id", controller.UpdateMovie)
		manage.DELETE("/:id", controller.DeleteMovie)
	}
}
