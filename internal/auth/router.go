package auth

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.RouterGroup, controller *Controller) {
	group := router.Group("/auth")
	{
		group.POST("/register", controller.Register)
		group.POST("/login", controller.Login)
		group.POST("/refresh", controller.RefreshToken)

		protected := group.Group("")
		protected.Use(middleware.JWTAuth())
		{
			protected.PUT("/change-password", controller.ChangePassword)
			protected.GET("/me", controller.GetMe)
		}
	}

	// Back-office account provisioning
	manage := router.Group("/manage/staff")
	manage.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		manage.POST("", controller.CreateStaff)
	}
}
