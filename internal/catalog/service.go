package catalog

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
	ErrItemNotFound = errors.New("catalog item not found")
	ErrItemExists   = errors.New("catalog item already exists")
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	GetItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error)
	ListAvailable(ctx context.Context, kind string) ([]Item, error)
	ListAll(ctx context.Context, kind string) ([]Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*Item, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
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

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	item := &Item{
		Name:        req.Name,
		Description: req.Description,
		Kind:        ItemKind(req.Kind),
		Price:       req.Price,
		Status:      StatusAvailable,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrItemExists
		}
		return nil, fmt.Errorf("failed to create catalog item: %w", err)
	}
	s.invalidateCache(ctx)
	return item, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *service) GetItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.repo.GetByIDs(ctx, ids)
}

func (s *service) ListAvailable(ctx context.Context, kind string) ([]Item, error) {
	fetch := func() (interface{}, error) {
		return s.repo.List(ctx, ItemKind(kind), true)
	}

	if s.cacheService != nil {
		var cached []Item
		key := constants.BuildCatalogAvailableKey(kind)
		if err := s.cacheService.GetOrSet(ctx, key, constants.TTL_CATALOG_AVAILABLE, fetch, &cached); err == nil {
			return cached, nil
		}
	}

	result, err := fetch()
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	return result.([]Item), nil
}

func (s *service) ListAll(ctx context.Context, kind string) ([]Item, error) {
	items, err := s.repo.List(ctx, ItemKind(kind), false)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	return items, nil
}

func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Status != nil {
		item.Status = ItemStatus(*req.Status)
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update catalog item: %w", err)
	}
	s.invalidateCache(ctx)
	return item, nil
}

func (s *service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if available {
		item.Status = StatusAvailable
	} else {
		item.Status = StatusUnavailable
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}
	s.invalidateCache(ctx)
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete catalog item: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_CATALOG_ALL)
	}
}
