package auth

import (
	"errors"
	"net/http"

	"cinebook/internal/shared/middleware"
	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// Register handles POST /api/v1/auth/register
func (ctl *Controller) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := ctl.validator.Struct(&req); err != nil {
		response.BadRequest(c, "Validation failed", err.Error())
		return
	}

	resp, err := ctl.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.Error(c, http.StatusConflict, "User with this email already exists", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to register user", nil)
		return
	}
	response.Success(c, http.StatusCreated, "User registered successfully", resp)
}

// Login handles POST /api/v1/auth/login
func (ctl *Controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := ctl.validator.Struct(&req); err != nil {
		response.BadRequest(c, "Validation failed", err.Error())
		return
	}

	resp, err := ctl.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to login", nil)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", resp)
}

// RefreshToken handles POST /api/v1/auth/refresh
func (ctl *Controller) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := ctl.validator.Struct(&req); err != nil {
		response.BadRequest(c, "Validation failed", err.Error())
		return
	}

	tokenPair, err := ctl.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
			response.Error(c, http.StatusUnauthorized, "Invalid or expired refresh token", nil)
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to refresh token", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, "Token refreshed successfully", tokenPair)
}

// ChangePassword handles PUT /api/v1/auth/change-password
func (ctl *Controller) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := ctl.validator.Struct(&req); err != nil {
		response.BadRequest(c, "Validation failed", err.Error())
		return
	}

	if err := ctl.service.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Current password is incorrect", nil)
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to change password", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// GetMe handles GET /api/v1/auth/me
func (ctl *Controller) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	email, _ := c.Get("user_email")
	role, _ := c.Get("user_role")
	response.Success(c, http.StatusOK, "User data retrieved successfully", gin.H{
		"id":    userID,
		"email": email,
		"role":  role,
	})
}

// CreateStaff handles POST /api/v1/manage/staff
func (ctl *Controller) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := ctl.validator.Struct(&req); err != nil {
		response.BadRequest(c, "Validation failed", err.Error())
		return
	}

	user, err := ctl.service.CreateStaff(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.Error(c, http.StatusConflict, "User with this email already exists", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create staff user", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Staff user created successfully", user)
}
