package promotions

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPromotionRoutes(router *gin.RouterGroup, controller *Controller) {
	// Public route - promotions running right now
	router.GET("/promotions", controller.ListActive)

	// Back-office routes - promotion management
	manage := router.Group("/manage/promotions")
	manage.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		manage.GET("", controller.ListPromotions)
		manage.GET("/:id", controller.GetPromotion)
		manage.POST("", controller.CreatePromotion)
		manage.PUT("/:id", controller.UpdatePromotion)
		manage.DELETE("/:id", controller.DeletePromotion)
	}
}
