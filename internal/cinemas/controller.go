package cinemas

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

// ListCinemas handles GET /api/v1/cinemas
func (ctl *Controller) ListCinemas(c *gin.Context) {
	cinemas, err := ctl.service.ListCinemas(c.Request.Context(), c.Query("city"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch cinemas", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Cinemas retrieved successfully", cinemas)
}

// GetCinema handles GET /api/v1/cinemas/:id
func (ctl *Controller) GetCinema(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cinema ID", nil)
		return
	}

	cinema, err := ctl.service.GetCinema(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCinemaNotFound) {
			response.Error(c, http.StatusNotFound, "Cinema not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch cinema", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Cinema retrieved successfully", cinema)
}

// GetRoomLayout handles GET /api/v1/rooms/:id/layout
func (ctl *Controller) GetRoomLayout(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid room ID", nil)
		return
	}

	layout, err := ctl.service.GetRoomLayout(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			response.Error(c, http.StatusNotFound, "Room not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch room layout", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Room layout retrieved successfully", layout)
}

// CreateCinema handles POST /api/v1/manage/cinemas
func (ctl *Controller) CreateCinema(c *gin.Context) {
	var req CreateCinemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	cinema, err := ctl.service.CreateCinema(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create cinema", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Cinema created successfully", cinema)
}

// UpdateCinema handles PUT /api/v1/manage/cinemas/:id
func (ctl *Controller) UpdateCinema(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cinema ID", nil)
		return
	}

	var req UpdateCinemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	cinema, err := ctl.service.UpdateCinema(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrCinemaNotFound) {
			response.Error(c, http.StatusNotFound, "Cinema not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update cinema", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Cinema updated successfully", cinema)
}

// DeleteCinema handles DELETE /api/v1/manage/cinemas/:id
func (ctl *Controller) DeleteCinema(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cinema ID", nil)
		return
	}

	if err := ctl.service.DeleteCinema(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrCinemaNotFound) {
			response.Error(c, http.StatusNotFound, "Cinema not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete cinema", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Cinema deleted successfully", nil)
}

// CreateRoom handles POST /api/v1/manage/cinemas/:id/rooms
func (ctl *Controller) CreateRoom(c *gin.Context) {
	cinemaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cinema ID", nil)
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	layout, err := ctl.service.CreateRoom(c.Request.Context(), cinemaID, req)
	if err != nil {
		if errors.Is(err, ErrCinemaNotFound) {
			response.Error(c, http.StatusNotFound, "Cinema not found", nil)
			return
		}
		if errors.Is(err, ErrInvalidLayout) {
			response.BadRequest(c, "Invalid room layout", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create room", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Room created successfully", layout)
}

// UpdateRoom handles PUT /api/v1/manage/rooms/:id
func (ctl *Controller) UpdateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid room ID", nil)
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	room, err := ctl.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			response.Error(c, http.StatusNotFound, "Room not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update room", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Room updated successfully", room)
}

// DeleteRoom handles DELETE /api/v1/manage/rooms/:id
func (ctl *Controller) DeleteRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid room ID", nil)
		return
	}

	if err := ctl.service.DeleteRoom(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			response.Error(c, http.StatusNotFound, "Room not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete room", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Room deleted successfully", nil)
}
