package loyalty

import (
	"errors"
	"net/http"
	"strconv"

	"cinebook/internal/shared/middleware"
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

// GetAccount handles GET /api/v1/loyalty/account
func (ctl *Controller) GetAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	account, err := ctl.service.GetAccount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch loyalty account", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Loyalty account retrieved successfully", account)
}

// GetHistory handles GET /api/v1/loyalty/history
func (ctl *Controller) GetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	history, err := ctl.service.GetHistory(c.Request.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			response.Success(c, http.StatusOK, "Loyalty history retrieved successfully", []Transaction{})
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch loyalty history", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Loyalty history retrieved successfully", history)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
