package promotions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/pricing"
	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPromotionNotFound = errors.New("promotion not found")

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*Promotion, error)
	GetPromotion(ctx context.Context, id uuid.UUID) (*Promotion, error)
	ListPromotions(ctx context.Context) ([]Promotion, error)
	ListActive(ctx context.Context, at time.Time) ([]Promotion, error)
	ActiveDiscounts(ctx context.Context, at time.Time) ([]pricing.DiscountSource, error)
	UpdatePromotion(ctx context.Context, id uuid.UUID, req UpdatePromotionRequest) (*Promotion, error)
	DeletePromotion(ctx context.Context, id uuid.UUID) error
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

func (s *service) CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*Promotion, error) {
	promotion := &Promotion{
		Name:        req.Name,
		Description: req.Description,
		Type:        pricing.DiscountType(req.Type),
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      StatusActive,
	}
	if err := s.repo.Create(ctx, promotion); err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}
	s.invalidateCache(ctx)
	return promotion, nil
}

func (s *service) GetPromotion(ctx context.Context, id uuid.UUID) (*Promotion, error) {
	promotion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return promotion, nil
}

func (s *service) ListPromotions(ctx context.Context) ([]Promotion, error) {
	promotions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	return promotions, nil
}

func (s *service) ListActive(ctx context.Context, at time.Time) ([]Promotion, error) {
	fetch := func() (interface{}, error) {
		return s.repo.ListActiveAt(ctx, at)
	}

	if s.cacheService != nil {
		var cached []Promotion
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_PROMOTIONS_ACTIVE,
			constants.TTL_PROMOTIONS_ACTIVE, fetch, &cached)
		if err == nil {
			return cached, nil
		}
	}

	result, err := fetch()
	if err != nil {
		return nil, fmt.Errorf("failed to list active promotions: %w", err)
	}
	return result.([]Promotion), nil
}

// ActiveDiscounts returns the running promotions in their checkout
// discount form. Eligibility against the order is still decided by the
// pricing engine.
func (s *service) ActiveDiscounts(ctx context.Context, at time.Time) ([]pricing.DiscountSource, error) {
	active, err := s.ListActive(ctx, at)
	if err != nil {
		return nil, err
	}
	sources := make([]pricing.DiscountSource, 0, len(active))
	for i := range active {
		sources = append(sources, active[i].ToDiscount())
	}
	return sources, nil
}

func (s *service) UpdatePromotion(ctx context.Context, id uuid.UUID, req UpdatePromotionRequest) (*Promotion, error) {
	promotion, err := s.GetPromotion(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		promotion.Name = *req.Name
	}
	if req.Description != nil {
		promotion.Description = *req.Description
	}
	if req.Type != nil {
		promotion.Type = pricing.DiscountType(*req.Type)
	}
	if req.Value != nil {
		promotion.Value = *req.Value
	}
	if req.MinPurchase != nil {
		promotion.MinPurchase = *req.MinPurchase
	}
	if req.StartTime != nil {
		promotion.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		promotion.EndTime = *req.EndTime
	}
	if req.Status != nil {
		promotion.Status = PromotionStatus(*req.Status)
	}
	if !promotion.EndTime.After(promotion.StartTime) {
		return nil, fmt.Errorf("promotion window is invalid: end must be after start")
	}

	if err := s.repo.Update(ctx, promotion); err != nil {
		return nil, fmt.Errorf("failed to update promotion: %w", err)
	}
	s.invalidateCache(ctx)
	return promotion, nil
}

func (s *service) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPromotion(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PROMOTIONS_ALL)
	}
}
