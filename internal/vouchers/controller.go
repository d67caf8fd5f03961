package vouchers

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

// ValidateVoucher handles POST /api/v1/vouchers/validate
func (ctl *Controller) ValidateVoucher(c *gin.Context) {
	var req ValidateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := ctl.service.Validate(c.Request.Context(), req.Code, req.Subtotal, time.Now())
	if err != nil {
		if errors.Is(err, ErrVoucherNotFound) {
			response.Error(c, http.StatusNotFound, "Voucher not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to validate voucher", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Voucher validated", result)
}

// ListVouchers handles GET /api/v1/manage/vouchers
func (ctl *Controller) ListVouchers(c *gin.Context) {
	vouchers, err := ctl.service.ListVouchers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch vouchers", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Vouchers retrieved successfully", vouchers)
}

// GetVoucher handles GET /api/v1/manage/vouchers/:id
func (ctl *Controller) GetVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid voucher ID", nil)
		return
	}

	voucher, err := ctl.service.GetVoucher(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVoucherNotFound) {
			response.Error(c, http.StatusNotFound, "Voucher not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch voucher", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Voucher retrieved successfully", voucher)
}

// CreateVoucher handles POST /api/v1/manage/vouchers
func (ctl *Controller) CreateVoucher(c *gin.Context) {
	var req CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	voucher, err := ctl.service.CreateVoucher(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrVoucherExists) {
			response.Error(c, http.StatusConflict, "Voucher code already exists", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create voucher", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Voucher created successfully", voucher)
}

// UpdateVoucher handles PUT /api/v1/manage/vouchers/:id
func (ctl *Controller) UpdateVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid voucher ID", nil)
		return
	}

	var req UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	voucher, err := ctl.service.UpdateVoucher(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrVoucherNotFound) {
			response.Error(c, http.StatusNotFound, "Voucher not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update voucher", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Voucher updated successfully", voucher)
}

// DeleteVoucher handles DELETE /api/v1/manage/vouchers/:id
func (ctl *Controller) DeleteVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid voucher ID", nil)
		return
	}

	if err := ctl.service.DeleteVoucher(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrVoucherNotFound) {
			response.Error(c, http.StatusNotFound, "Voucher not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete voucher", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Voucher deleted successfully", nil)
}
