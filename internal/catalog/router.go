package catalog

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCatalogRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public route - available combos and snacks
	router.GET("/catalog", controller.ListAvailable)

	// Back-office routes - catalog management (staff can toggle availability)
	manage := router.Group("/manage/catalog")
	manage.Use(middleware.JWTAuth(), middleware.RequireBackOffice())
	{
		manage.GET("", controller.ListAll)
		manage.PATCH("/:id/availability", controller.SetAvailability)
	}

	managerOnly := router.Group("/manage/catalog")
	managerOnly.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		managerOnly.POST("", controller.CreateItem)
		managerOnly.PUT("/:id", controller.UpdateItem)
		managerOnly.DELETE("/:id", controller.DeleteItem)
	}
}
