package movies

import (
	"context"
	"errors"
	"fmt"

	"cinebook/internal/genres"
	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrMovieNotFound = errors.New("movie not found")

// GenreLookup resolves genre names to genre records.
type GenreLookup interface {
	GetGenresByNames(ctx context.Context, names []string) ([]genres.Genre, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateMovie(ctx context.Context, userID uuid.UUID, req CreateMovieRequest) (*MovieResponse, error)
	GetMovie(ctx context.Context, id uuid.UUID) (*MovieResponse, error)
	ListMovies(ctx context.Context, query MovieListQuery) (*PaginatedMovies, error)
	GetNowShowing(ctx context.Context, limit int) ([]MovieResponse, error)
	GetComingSoon(ctx context.Context, limit int) ([]MovieResponse, error)
	UpdateMovie(ctx context.Context, id, userID uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         Repository
	genreLookup  GenreLookup
	cacheService cache.Service
}

func NewService(repo Repository, genreLookup GenreLookup) Service {
	return &service{repo: repo, genreLookup: genreLookup}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateMovie(ctx context.Context, userID uuid.UUID, req CreateMovieRequest) (*MovieResponse, error) {
	movie := &Movie{
		Title:       req.Title,
		Description: req.Description,
		Director:    req.Director,
		Cast:        req.Cast,
		DurationMin: req.DurationMin,
		Rating:      req.Rating,
		Language:    req.Language,
		ReleaseDate: req.ReleaseDate,
		Status:      StatusComingSoon,
		PosterURL:   req.PosterURL,
		TrailerURL:  req.TrailerURL,
		CreatedBy:   userID,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	if len(req.Genres) > 0 {
		if err := s.attachGenres(ctx, movie, req.Genres); err != nil {
			return nil, err
		}
	}

	s.invalidateCache(ctx)
	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) GetMovie(ctx context.Context, id uuid.UUID) (*MovieResponse, error) {
	fetch := func() (interface{}, error) {
		movie, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return movie.ToResponse(), nil
	}

	if s.cacheService != nil {
		var cached MovieResponse
		err := s.cacheService.GetOrSet(ctx, constants.BuildMovieDetailKey(id.String()),
			constants.TTL_MOVIE_DETAIL, fetch, &cached)
		if err == nil {
			return &cached, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
	}

	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) ListMovies(ctx context.Context, query MovieListQuery) (*PaginatedMovies, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	fetch := func() (interface{}, error) {
		found, totalCount, err := s.repo.List(ctx, query)
		if err != nil {
			return nil, err
		}
		responses := make([]MovieResponse, 0, len(found))
		for _, m := range found {
			responses = append(responses, m.ToResponse())
		}
		return &PaginatedMovies{
			Movies:     responses,
			TotalCount: totalCount,
			Page:       query.Page,
			Limit:      query.Limit,
			TotalPages: CalculateTotalPages(totalCount, query.Limit),
		}, nil
	}

	// Search and genre filters fan out too much to be worth caching
	if s.cacheService != nil && query.Search == "" && query.Genre == "" {
		var cached PaginatedMovies
		key := constants.BuildMovieListKey(query.Page, query.Limit, query.Status)
		if err := s.cacheService.GetOrSet(ctx, key, constants.TTL_MOVIE_LIST, fetch, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := fetch()
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return result.(*PaginatedMovies), nil
}

func (s *service) GetNowShowing(ctx context.Context, limit int) ([]MovieResponse, error) {
	return s.getByStatus(ctx, StatusNowShowing, limit)
}

func (s *service) GetComingSoon(ctx context.Context, limit int) ([]MovieResponse, error) {
	return s.getByStatus(ctx, StatusComingSoon, limit)
}

func (s *service) getByStatus(ctx context.Context, status MovieStatus, limit int) ([]MovieResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	found, err := s.repo.GetByStatus(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movies: %w", err)
	}
	responses := make([]MovieResponse, 0, len(found))
	for _, m := range found {
		responses = append(responses, m.ToResponse())
	}
	return responses, nil
}

func (s *service) UpdateMovie(ctx context.Context, id, userID uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.Director != nil {
		movie.Director = *req.Director
	}
	if req.Cast != nil {
		movie.Cast = *req.Cast
	}
	if req.DurationMin != nil {
		movie.DurationMin = *req.DurationMin
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	if req.Language != nil {
		movie.Language = *req.Language
	}
	if req.ReleaseDate != nil {
		movie.ReleaseDate = *req.ReleaseDate
	}
	if req.Status != nil {
		movie.Status = MovieStatus(*req.Status)
	}
	if req.PosterURL != nil {
		movie.PosterURL = *req.PosterURL
	}
	if req.TrailerURL != nil {
		movie.TrailerURL = *req.TrailerURL
	}
	movie.UpdatedBy = &userID

	if err := s.repo.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	if req.Genres != nil {
		if err := s.attachGenres(ctx, movie, req.Genres); err != nil {
			return nil, err
		}
	}

	s.invalidateCache(ctx)
	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *service) attachGenres(ctx context.Context, movie *Movie, names []string) error {
	resolved, err := s.genreLookup.GetGenresByNames(ctx, names)
	if err != nil {
		return fmt.Errorf("failed to resolve genres: %w", err)
	}
	if err := s.repo.ReplaceGenres(ctx, movie, resolved); err != nil {
		return fmt.Errorf("failed to attach genres: %w", err)
	}
	movie.Genres = resolved
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_MOVIES_ALL)
	}
}
