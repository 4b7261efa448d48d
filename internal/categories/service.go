package categories

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/catalog-admin/internal/products"
	"github.com/angelmondragon/catalog-admin/pkg/logger"
	"github.com/angelmondragon/catalog-admin/pkg/redis"
)

// Lister fetches active categories from the catalog API.
type Lister interface {
	List(ctx context.Context) ([]Category, error)
}

// Service returns active categories, reading through the cache when one is configured.
type Service struct {
	lister Lister
	cache  redis.JSONCache
	ttl    time.Duration
	logg   *logger.Logger
}

// ServiceParams wires the category service. Cache may be nil.
type ServiceParams struct {
	Lister Lister
	Cache  redis.JSONCache
	TTL    time.Duration
	Logger *logger.Logger
}

func NewService(p ServiceParams) *Service {
	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{lister: p.Lister, cache: p.Cache, ttl: p.TTL, logg: logg}
}

func (s *Service) cacheKey() string {
	return s.cache.CacheKey(Resource, "active")
}

// Active lists active categories. Cache failures are logged and never returned.
func (s *Service) Active(ctx context.Context) ([]Category, error) {
	ctx = s.logg.WithResource(ctx, Resource)
	if s.cache != nil {
		var cached []Category
		hit, err := s.cache.GetJSON(ctx, s.cacheKey(), &cached)
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "category cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	list, err := s.lister.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, s.cacheKey(), list, s.ttl); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "category cache write failed")
		}
	}
	return list, nil
}

// Names returns the active category names in API order.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	list, err := s.Active(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list))
	for _, c := range list {
		if name := strings.TrimSpace(c.CategoryName); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// SizeOptions returns the form's size choices for a category name.
func (s *Service) SizeOptions(name string) []string {
	return products.SizeOptions(name)
}

// Invalidate drops the cached list so the next call hits the API.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, s.cacheKey())
}
