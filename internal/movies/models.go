package movies

import (
	"time"

	"cinebook/internal/genres"

	"github.com/google/uuid"
)

// MovieStatus is the lifecycle state of a movie on the billboard.
type MovieStatus string

const (
	StatusComingSoon MovieStatus = "COMING_SOON"
	StatusNowShowing MovieStatus = "NOW_SHOWING"
	StatusArchived   MovieStatus = "ARCHIVED"
)

func (s MovieStatus) IsValid() bool {
	switch s {
	case StatusComingSoon, StatusNowShowing, StatusArchived:
		return true
	}
	return false
}

type Movie struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string      `json:"title" gorm:"not null;size:255"`
	Description string      `json:"description" gorm:"type:text"`
	Director    string      `json:"director" gorm:"size:255"`
	Cast        string      `json:"cast" gorm:"type:text"`
	DurationMin int         `json:"duration_min" gorm:"not null;check:duration_min > 0"`
	Rating      string      `json:"rating" gorm:"size:10"` // age rating label, e.g. P, C13, C16, C18
	Language    string      `json:"language" gorm:"size:50"`
	ReleaseDate time.Time   `json:"release_date"`
	Status      MovieStatus `json:"status" gorm:"type:varchar(20);default:'COMING_SOON'"`
	PosterURL   string      `json:"poster_url" gorm:"size:500"`
	TrailerURL  string      `json:"trailer_url" gorm:"size:500"`

	Genres []genres.Genre `json:"-" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE;"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Movie
func (Movie) TableName() string {
	return "movies"
}

// GenreInfo is the genre payload embedded in movie responses
type GenreInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type MovieResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Director    string      `json:"director"`
	Cast        string      `json:"cast"`
	DurationMin int         `json:"duration_min"`
	Rating      string      `json:"rating"`
	Language    string      `json:"language"`
	ReleaseDate time.Time   `json:"release_date"`
	Status      MovieStatus `json:"status"`
	PosterURL   string      `json:"poster_url"`
	TrailerURL  string      `json:"trailer_url"`
	Genres      []GenreInfo `json:"genres"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type CreateMovieRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=255"`
	Description string    `json:"description" binding:"max=5000"`
	Director    string    `json:"director" binding:"max=255"`
	Cast        string    `json:"cast" binding:"max=2000"`
	DurationMin int       `json:"duration_min" binding:"required,min=1,max=600"`
	Rating      string    `json:"rating" binding:"max=10"`
	Language    string    `json:"language" binding:"max=50"`
	ReleaseDate time.Time `json:"release_date" binding:"required"`
	PosterURL   string    `json:"poster_url" binding:"omitempty,url"`
	TrailerURL  string    `json:"trailer_url" binding:"omitempty,url"`
	Genres      []string  `json:"genres"`
}

type UpdateMovieRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	Director    *string    `json:"director" binding:"omitempty,max=255"`
	Cast        *string    `json:"cast" binding:"omitempty,max=2000"`
	DurationMin *int       `json:"duration_min" binding:"omitempty,min=1,max=600"`
	Rating      *string    `json:"rating" binding:"omitempty,max=10"`
	Language    *string    `json:"language" binding:"omitempty,max=50"`
	ReleaseDate *time.Time `json:"release_date"`
	Status      *string    `json:"status" binding:"omitempty,oneof=COMING_SOON NOW_SHOWING ARCHIVED"`
	PosterURL   *string    `json:"poster_url" binding:"omitempty,url"`
	TrailerURL  *string    `json:"trailer_url" binding:"omitempty,url"`
	Genres      []string   `json:"genres"`
}

type MovieListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=COMING_SOON NOW_SHOWING ARCHIVED"`
	Genre  string `form:"genre"`
}

type PaginatedMovies struct {
	Movies     []MovieResponse `json:"movies"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func (m *Movie) ToResponse() MovieResponse {
	genreInfos := make([]GenreInfo, 0, len(m.Genres))
	for _, g := range m.Genres {
		genreInfos = append(genreInfos, GenreInfo{
			ID:   g.ID.String(),
			Name: g.Name,
			Slug: g.Slug,
		})
	}

	return MovieResponse{
		ID:          m.ID.String(),
		Title:       m.Title,
		Description: m.Description,
		Director:    m.Director,
		Cast:        m.Cast,
		DurationMin: m.DurationMin,
		Rating:      m.Rating,
		Language:    m.Language,
		ReleaseDate: m.ReleaseDate,
		Status:      m.Status,
		PosterURL:   m.PosterURL,
		TrailerURL:  m.TrailerURL,
		Genres:      genreInfos,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
