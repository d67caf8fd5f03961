package movies

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

// ListMovies handles GET /api/v1/movies
func (ctl *Controller) ListMovies(c *gin.Context) {
	var query MovieListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	result, err := ctl.service.ListMovies(c.Request.Context(), query)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch movies", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Movies retrieved successfully", result)
}

// GetNowShowing handles GET /api/v1/movies/now-showing
func (ctl *Controller) GetNowShowing(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	result, err := ctl.service.GetNowShowing(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch movies", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Now showing movies retrieved successfully", result)
}

// GetComingSoon handles GET /api/v1/movies/coming-soon
func (ctl *Controller) GetComingSoon(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	result, err := ctl.service.GetComingSoon(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch movies", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Coming soon movies retrieved successfully", result)
}

// GetMovie handles GET /api/v1/movies/:id
func (ctl *Controller) GetMovie(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid movie ID", nil)
		return
	}

	movie, err := ctl.service.GetMovie(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.Error(c, http.StatusNotFound, "Movie not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch movie", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Movie retrieved successfully", movie)
}

// CreateMovie handles POST /api/v1/manage/movies
func (ctl *Controller) CreateMovie(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	movie, err := ctl.service.CreateMovie(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create movie", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Movie created successfully", movie)
}

// UpdateMovie handles PUT /api/v1/manage/movies/:id
func (ctl *Controller) UpdateMovie(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid movie ID", nil)
		return
	}

	var req UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	movie, err := ctl.service.UpdateMovie(c.Request.Context(), id, userID, req)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.Error(c, http.StatusNotFound, "Movie not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update movie", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /api/v1/manage/movies/:id
func (ctl *Controller) DeleteMovie(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid movie ID", nil)
		return
	}

	if err := ctl.service.DeleteMovie(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.Error(c, http.StatusNotFound, "Movie not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete movie", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Movie deleted successfully", nil)
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
