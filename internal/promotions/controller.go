package promotions

import (
	"errors"
	"net/http"
	"time"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListActive handles GET /api/v1/promotions
func (ctl *Controller) ListActive(c *gin.Context) {
	promotions, err := ctl.service.ListActive(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch promotions", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Active promotions retrieved successfully", promotions)
}

// ListPromotions handles GET /api/v1/manage/promotions
func (ctl *Controller) ListPromotions(c *gin.Context) {
	promotions, err := ctl.service.ListPromotions(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch promotions", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Promotions retrieved successfully", promotions)
}

// GetPromotion handles GET /api/v1/manage/promotions/:id
func (ctl *Controller) GetPromotion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid promotion ID", nil)
		return
	}

	promotion, err := ctl.service.GetPromotion(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPromotionNotFound) {
			response.Error(c, http.StatusNotFound, "Promotion not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch promotion", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Promotion retrieved successfully", promotion)
}

// CreatePromotion handles POST /api/v1/manage/promotions
func (ctl *Controller) CreatePromotion(c *gin.Context) {
	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	promotion, err := ctl.service.CreatePromotion(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create promotion", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Promotion created successfully", promotion)
}

// UpdatePromotion handles PUT /api/v1/manage/promotions/:id
func (ctl *Controller) UpdatePromotion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid promotion ID", nil)
		return
	}

	var req UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	promotion, err := ctl.service.UpdatePromotion(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrPromotionNotFound) {
			response.Error(c, http.StatusNotFound, "Promotion not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update promotion", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Promotion updated successfully", promotion)
}

// DeletePromotion handles DELETE /api/v1/manage/promotions/:id
func (ctl *Controller) DeletePromotion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid promotion ID", nil)
		return
	}

	if err := ctl.service.DeletePromotion(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPromotionNotFound) {
			response.Error(c, http.StatusNotFound, "Promotion not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete promotion", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Promotion deleted successfully", nil)
}
