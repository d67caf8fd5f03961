package catalog

import (
	"errors"
	"net/http"

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

// ListAvailable handles GET /api/v1/catalog
func (ctl *Controller) ListAvailable(c *gin.Context) {
	kind := c.Query("kind")
	if kind != "" && kind != string(KindCombo) && kind != string(KindSnack) {
		response.BadRequest(c, "Invalid kind, must be combo or snack", nil)
		return
	}

	items, err := ctl.service.ListAvailable(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch catalog", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Catalog retrieved successfully", items)
}

// ListAll handles GET /api/v1/manage/catalog
func (ctl *Controller) ListAll(c *gin.Context) {
	items, err := ctl.service.ListAll(c.Request.Context(), c.Query("kind"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch catalog", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Catalog retrieved successfully", items)
}

// CreateItem handles POST /api/v1/manage/catalog
func (ctl *Controller) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	item, err := ctl.service.CreateItem(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrItemExists) {
			response.Error(c, http.StatusConflict, "Catalog item already exists", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create catalog item", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Catalog item created successfully", item)
}

// UpdateItem handles PUT /api/v1/manage/catalog/:id
func (ctl *Controller) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID", nil)
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	item, err := ctl.service.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.Error(c, http.StatusNotFound, "Catalog item not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update catalog item", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Catalog item updated successfully", item)
}

// SetAvailability handles PATCH /api/v1/manage/catalog/:id/availability
func (ctl *Controller) SetAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID", nil)
		return
	}

	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	item, err := ctl.service.SetAvailability(c.Request.Context(), id, *req.Available)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.Error(c, http.StatusNotFound, "Catalog item not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update availability", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Availability updated successfully", item)
}

// DeleteItem handles DELETE /api/v1/manage/catalog/:id
func (ctl *Controller) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID", nil)
		return
	}

	if err := ctl.service.DeleteItem(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.Error(c, http.StatusNotFound, "Catalog item not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete catalog item", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Catalog item deleted successfully", nil)
}
