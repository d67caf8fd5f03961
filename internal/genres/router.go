package genres

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupGenreRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public routes - browsing genres
	public := router.Group("/genres")
	{
		public.GET("", controller.GetActiveGenres)
		public.GET("/:id", controller.GetGenre)
	}

	// Back-office routes - genre management
	manage := router.Group("/manage/genres")
	manage.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		manage.POST("", controller.CreateGenre)
		manage.PUT("/:id", controller.UpdateGenre)
		manage.DELETE("/:id", controller.DeleteGenre)
	}
}
