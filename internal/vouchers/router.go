package vouchers

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupVoucherRoutes(router *gin.RouterGroup, controller *Controller) {
	// Customer route - preview a code before checkout
	validate := router.Group("/vouchers")
	validate.Use(middleware.JWTAuth())
	{
		validate.POST("/validate", controller.ValidateVoucher)
	}

	// Back-office routes - voucher management
	manage := router.Group("/manage/vouchers")
	manage.Use(middleware.JWTAuth(), middleware.RequireManager())
	{
		manage.GET("", controller.ListVouchers)
		manage.GET("/:id", controller.GetVoucher)
		manage.POST("", controller.CreateVoucher)
		manage.PUT("/:id", controller.UpdateVoucher)
		manage.DELETE("/:id", controller.DeleteVoucher)
	}
}
