package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cinebook/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetDashboard handles GET /api/v1/manage/dashboard
func (ctl *Controller) GetDashboard(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	top, _ := strconv.Atoi(c.DefaultQuery("top", "10"))

	dashboard, err := ctl.service.GetDashboard(c.Request.Context(), days, top)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to build dashboard", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

// GetSummary handles GET /api/v1/manage/dashboard/summary
func (ctl *Controller) GetSummary(c *gin.Context) {
	summary, err := ctl.service.GetSummary(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch summary", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Summary retrieved successfully", summary)
}

// GetDailyStats handles GET /api/v1/manage/dashboard/daily
func (ctl *Controller) GetDailyStats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	stats, err := ctl.service.GetDailyStats(c.Request.Context(), days)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch daily stats", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Daily stats retrieved successfully", stats)
}
