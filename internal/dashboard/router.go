package dashboard

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupDashboardRoutes(router *gin.RouterGroup, controller *Controller) {
	// Back-office routes - operational figures
	manage := router.Group("/manage/dashboard")
	manage.Use(middleware.JWTAuth(), middleware.RequireBackOffice())
	{
		manage.GET("", controller.GetDashboard)
		manage.GET("/summary", controller.GetSummary)
		manage.GET("/daily", controller.GetDailyStats)
	}
}
