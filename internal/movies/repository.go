package movies

import (
	"context"
	"math"

	"cinebook/internal/genres"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	List(ctx context.Context, query MovieListQuery) ([]Movie, int64, error)
	GetByStatus(ctx context.Context, status MovieStatus, limit int) ([]Movie, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceGenres(ctx context.Context, movie *Movie, list []genres.Genre) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.WithContext(ctx).
		Preload("Genres").
		Where("id = ?", id).
		First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *repository) List(ctx context.Context, query MovieListQuery) ([]Movie, int64, error) {
	var found []Movie
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).Model(&Movie{})

	if query.Status != "" {
		baseQuery = baseQuery.Where("status = ?", query.Status)
	}
	if query.Search != "" {
		baseQuery = baseQuery.Where("title ILIKE ?", "%"+query.Search+"%")
	}
	if query.Genre != "" {
		baseQuery = baseQuery.
			Joins("JOIN movie_genres ON movie_genres.movie_id = movies.id").
			Joins("JOIN genres ON genres.id = movie_genres.genre_id").
			Where("genres.slug = ?", query.Genre)
	}

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("Genres").
		Order("release_date DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&found).Error

	return found, totalCount, err
}

func (r *repository) GetByStatus(ctx context.Context, status MovieStatus, limit int) ([]Movie, error) {
	var found []Movie
	err := r.db.WithContext(ctx).
		Preload("Genres").
		Where("status = ?", status).
		Order("release_date DESC").
		Limit(limit).
		Find(&found).Error
	return found, err
}

func (r *repository) Update(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Save(movie).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Movie{}, "id = ?", id).Error
}

func (r *repository) ReplaceGenres(ctx context.Context, movie *Movie, list []genres.Genre) error {
	return r.db.WithContext(ctx).Model(movie).Association("Genres").Replace(list)
}

// CalculateTotalPages computes the page count for a paginated listing
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
