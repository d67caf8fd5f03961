package bookings

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller *Controller) {
	// Authenticated routes - checkout and booking management
	bookings := router.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.POST("/price-preview", controller.PreviewPrice)
		bookings.POST("", controller.ConfirmBooking)
		bookings.GET("", controller.ListMyBookings)
		bookings.GET("/:id", controller.GetBooking)
		bookings.DELETE("/:id", controller.CancelBooking)
	}

	// Back-office routes - booking oversight
	manage := router.Group("/manage/bookings")
	manage.Use(middleware.JWTAuth(), middleware.RequireBackOffice())
	{
		manage.GET("", controller.ListBookings)
		manage.GET("/:id", controller.GetBookingManage)
		manage.DELETE("/:id", controller.CancelBookingManage)
	}
}
