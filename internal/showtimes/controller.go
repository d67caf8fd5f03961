package showtimes

import (
	"errors"
	"net/http"

	"cinebook/internal/cinemas"
	"cinebook/internal/movies"
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

// ListShowtimes handles GET /api/v1/showtimes
func (ctl *Controller) ListShowtimes(c *gin.Context) {
	var query ShowtimeListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	result, err := ctl.service.ListShowtimes(c.Request.Context(), query)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch showtimes", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Showtimes retrieved successfully", result)
}

// GetShowtime handles GET /api/v1/showtimes/:id
func (ctl *Controller) GetShowtime(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid showtime ID", nil)
		return
	}

	showtime, err := ctl.service.GetShowtime(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrShowtimeNotFound) {
			response.Error(c, http.StatusNotFound, "Showtime not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch showtime", err.Error())
		return
	}
	resp := showtime.ToResponse()
	response.Success(c, http.StatusOK, "Showtime retrieved successfully", resp)
}

// CreateShowtime handles POST /api/v1/manage/showtimes
func (ctl *Controller) CreateShowtime(c *gin.Context) {
	var req CreateShowtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	showtime, err := ctl.service.CreateShowtime(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrMovieNotFound):
			response.Error(c, http.StatusNotFound, "Movie not found", nil)
		case errors.Is(err, cinemas.ErrRoomNotFound):
			response.Error(c, http.StatusNotFound, "Room not found", nil)
		case errors.Is(err, ErrRoomOverlap):
			response.Error(c, http.StatusConflict, "Room already booked for that time", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create showtime", err.Error())
		}
		return
	}
	response.Success(c, http.StatusCreated, "Showtime created successfully", showtime)
}

// UpdateShowtime handles PUT /api/v1/manage/showtimes/:id
func (ctl *Controller) UpdateShowtime(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid showtime ID", nil)
		return
	}

	var req UpdateShowtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	showtime, err := ctl.service.UpdateShowtime(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrShowtimeNotFound):
			response.Error(c, http.StatusNotFound, "Showtime not found", nil)
		case errors.Is(err, ErrRoomOverlap):
			response.Error(c, http.StatusConflict, "Room already booked for that time", nil)
		case errors.Is(err, ErrInvalidTransition):
			response.BadRequest(c, "Invalid status transition", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update showtime", err.Error())
		}
		return
	}
	response.Success(c, http.StatusOK, "Showtime updated successfully", showtime)
}

// DeleteShowtime handles DELETE /api/v1/manage/showtimes/:id
func (ctl *Controller) DeleteShowtime(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid showtime ID", nil)
		return
	}

	if err := ctl.service.DeleteShowtime(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrShowtimeNotFound):
			response.Error(c, http.StatusNotFound, "Showtime not found", nil)
		case errors.Is(err, ErrInvalidTransition):
			response.BadRequest(c, "Showtime cannot be cancelled", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to delete showtime", err.Error())
		}
		return
	}
	response.Success(c, http.StatusOK, "Showtime removed successfully", nil)
}
