package seats

import (
	"errors"
	"net/http"

	"cinebook/internal/cinemas"
	"cinebook/internal/shared/middleware"
	"cinebook/internal/shared/utils/response"
	"cinebook/internal/showtimes"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetSeatMap handles GET /api/v1/showtimes/:id/seats
func (ctl *Controller) GetSeatMap(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid showtime ID", nil)
		return
	}

	seatMap, err := ctl.service.GetSeatMap(c.Request.Context(), showtimeID)
	if err != nil {
		switch {
		case errors.Is(err, showtimes.ErrShowtimeNotFound):
			response.Error(c, http.StatusNotFound, "Showtime not found", nil)
		case errors.Is(err, cinemas.ErrRoomNotFound):
			response.Error(c, http.StatusNotFound, "Room not found", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to fetch seat map", err.Error())
		}
		return
	}
	response.Success(c, http.StatusOK, "Seat map retrieved successfully", seatMap)
}

// HoldSeats handles POST /api/v1/seats/hold
func (ctl *Controller) HoldSeats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req HoldSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	hold, err := ctl.service.HoldSeats(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, showtimes.ErrShowtimeNotFound):
			response.Error(c, http.StatusNotFound, "Showtime not found", nil)
		case errors.Is(err, showtimes.ErrShowtimeNotBookable):
			response.Error(c, http.StatusConflict, "Showtime is not open for booking", nil)
		case errors.Is(err, ErrSeatNotInRoom):
			response.BadRequest(c, "Seat does not belong to this showtime", nil)
		case errors.Is(err, ErrSeatAlreadyHeld), errors.Is(err, ErrSeatAlreadyBooked):
			response.Error(c, http.StatusConflict, "One or more seats are no longer available", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to hold seats", err.Error())
		}
		return
	}
	response.Success(c, http.StatusCreated, "Seats held successfully", hold)
}

// ReleaseHold handles DELETE /api/v1/seats/hold/:holdId
func (ctl *Controller) ReleaseHold(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	holdID := c.Param("holdId")
	if _, err := uuid.Parse(holdID); err != nil {
		response.BadRequest(c, "Invalid hold ID", nil)
		return
	}

	if err := ctl.service.ReleaseHold(c.Request.Context(), userID, holdID); err != nil {
		switch {
		case errors.Is(err, ErrHoldNotFound):
			response.Error(c, http.StatusNotFound, "Hold not found or expired", nil)
		case errors.Is(err, ErrHoldMismatch):
			response.Error(c, http.StatusForbidden, "Hold belongs to another user", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to release hold", err.Error())
		}
		return
	}
	response.Success(c, http.StatusOK, "Hold released successfully", nil)
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
