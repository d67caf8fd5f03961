package genres

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

// GetActiveGenres handles GET /api/v1/genres
func (ctl *Controller) GetActiveGenres(c *gin.Context) {
	genres, err := ctl.service.GetActiveGenres(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch genres", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Genres retrieved successfully", genres)
}

// GetGenre handles GET /api/v1/genres/:id
func (ctl *Controller) GetGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid genre ID", nil)
		return
	}

	genre, err := ctl.service.GetGenre(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrGenreNotFound) {
			response.Error(c, http.StatusNotFound, "Genre not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch genre", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Genre retrieved successfully", genre)
}

// CreateGenre handles POST /api/v1/manage/genres
func (ctl *Controller) CreateGenre(c *gin.Context) {
	var req CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	genre, err := ctl.service.CreateGenre(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrGenreExists) {
			response.Error(c, http.StatusConflict, "Genre already exists", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create genre", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Genre created successfully", genre)
}

// UpdateGenre handles PUT /api/v1/manage/genres/:id
func (ctl *Controller) UpdateGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid genre ID", nil)
		return
	}

	var req UpdateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	genre, err := ctl.service.UpdateGenre(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrGenreNotFound) {
			response.Error(c, http.StatusNotFound, "Genre not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update genre", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Genre updated successfully", genre)
}

// DeleteGenre handles DELETE /api/v1/manage/genres/:id
func (ctl *Controller) DeleteGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid genre ID", nil)
		return
	}

	if err := ctl.service.DeleteGenre(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrGenreNotFound) {
			response.Error(c, http.StatusNotFound, "Genre not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete genre", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Genre deleted successfully", nil)
}
