package genres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGenreNotFound = errors.New("genre not found")
	ErrGenreExists   = errors.New("genre already exists")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateGenre(ctx context.Context, req CreateGenreRequest) (*GenreResponse, error)
	GetGenre(ctx context.Context, id uuid.UUID) (*GenreResponse, error)
	GetActiveGenres(ctx context.Context) ([]GenreResponse, error)
	GetGenresByNames(ctx context.Context, names []string) ([]Genre, error)
	UpdateGenre(ctx context.Context, id uuid.UUID, req UpdateGenreRequest) (*GenreResponse, error)
	DeleteGenre(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateGenre(ctx context.Context, req CreateGenreRequest) (*GenreResponse, error) {
	slug := slugify(req.Name)
	if _, err := s.repo.GetBySlug(ctx, slug); err == nil {
		return nil, ErrGenreExists
	}

	genre := &Genre{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	s.invalidateCache(ctx)
	resp := genre.ToResponse()
	return &resp, nil
}

func (s *service) GetGenre(ctx context.Context, id uuid.UUID) (*GenreResponse, error) {
	genre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	resp := genre.ToResponse()
	return &resp, nil
}

func (s *service) GetActiveGenres(ctx context.Context) ([]GenreResponse, error) {
	fetch := func() (interface{}, error) {
		found, err := s.repo.GetActive(ctx)
		if err != nil {
			return nil, err
		}
		responses := make([]GenreResponse, 0, len(found))
		for _, g := range found {
			responses = append(responses, g.ToResponse())
		}
		return responses, nil
	}

	if s.cacheService != nil {
		var cached []GenreResponse
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_GENRES_ACTIVE,
			constants.TTL_GENRES_ACTIVE, fetch, &cached)
		if err == nil {
			return cached, nil
		}
	}

	result, err := fetch()
	if err != nil {
		return nil, err
	}
	return result.([]GenreResponse), nil
}

func (s *service) GetGenresByNames(ctx context.Context, names []string) ([]Genre, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return s.repo.GetByNames(ctx, names)
}

func (s *service) UpdateGenre(ctx context.Context, id uuid.UUID, req UpdateGenreRequest) (*GenreResponse, error) {
	genre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		genre.Name = *req.Name
		genre.Slug = slugify(*req.Name)
	}
	if req.Description != nil {
		genre.Description = *req.Description
	}
	if req.IsActive != nil {
		genre.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, genre); err != nil {
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}

	s.invalidateCache(ctx)
	resp := genre.ToResponse()
	return &resp, nil
}

func (s *service) DeleteGenre(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_GENRES_ALL)
	}
}

// slugify builds a URL-safe slug from a genre name
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
