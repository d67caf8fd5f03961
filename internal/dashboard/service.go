package dashboard

import (
	"context"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	GetDashboard(ctx context.Context, days, topLimit int) (*Dashboard, error)
	GetSummary(ctx context.Context) (*Summary, error)
	GetDailyStats(ctx context.Context, days int) ([]DailyStat, error)
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

func (s *service) GetDashboard(ctx context.Context, days, topLimit int) (*Dashboard, error) {
	summary, err := s.GetSummary(ctx)
	if err != nil {
		return nil, err
	}

	daily, err := s.GetDailyStats(ctx, days)
	if err != nil {
		return nil, err
	}

	if topLimit <= 0 || topLimit > 50 {
		topLimit = 10
	}
	topMovies, err := s.repo.GetTopMovies(ctx, topLimit)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Summary:   *summary,
		Daily:     daily,
		TopMovies: topMovies,
	}, nil
}

func (s *service) GetSummary(ctx context.Context) (*Summary, error) {
	fetch := func() (interface{}, error) {
		return s.repo.GetSummary(ctx)
	}

	if s.cacheService != nil {
		var cached Summary
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_DASHBOARD_SUMMARY,
			constants.TTL_DASHBOARD, fetch, &cached)
		if err == nil {
			return &cached, nil
		}
	}

	return s.repo.GetSummary(ctx)
}

func (s *service) GetDailyStats(ctx context.Context, days int) ([]DailyStat, error) {
	if days <= 0 || days > 90 {
		days = 30
	}

	fetch := func() (interface{}, error) {
		return s.repo.GetDailyStats(ctx, days)
	}

	if s.cacheService != nil {
		var cached []DailyStat
		err := s.cacheService.GetOrSet(ctx, constants.BuildDashboardDailyKey(days),
			constants.TTL_DASHBOARD, fetch, &cached)
		if err == nil {
			return cached, nil
		}
	}

	return s.repo.GetDailyStats(ctx, days)
}
