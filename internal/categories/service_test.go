package categories

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type stubLister struct {
	calls int
	list  []Category
	err   error
}

func (s *stubLister) List(context.Context) ([]Category, error) {
	s.calls++
	return s.list, s.err
}

type memCache struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	lastTTL time.Duration
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.lastTTL = ttl
	return nil
}

func (m *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memCache) CacheKey(parts ...string) string {
	key := "catalog:cache"
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func TestCategoryIDAcceptsNumberOrString(t *testing.T) {
	var list []Category
	raw := `[{"categoryID":3,"categoryName":"Men"},{"categoryID":"k-1","categoryName":"Kids"},{"categoryID":null,"categoryName":"X"}]`
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if list[0].CategoryID != "3" || list[1].CategoryID != "k-1" || list[2].CategoryID != "" {
		t.Fatalf("unexpected ids %+v", list)
	}
}

func TestActiveReadsThroughCache(t *testing.T) {
	lister := &stubLister{list: []Category{{CategoryID: "1", CategoryName: "Men"}}}
	cache := newMemCache()
	svc := NewService(ServiceParams{Lister: lister, Cache: cache, TTL: time.Minute})

	for i := 0; i < 3; i++ {
		names, err := svc.Names(context.Background())
		if err != nil || len(names) != 1 || names[0] != "Men" {
			t.Fatalf("unexpected names %v %v", names, err)
		}
	}
	if lister.calls != 1 {
		t.Fatalf("expected one api call, got %d", lister.calls)
	}
	if _, ok := cache.data["catalog:cache:categories:active"]; !ok || cache.lastTTL != time.Minute {
		t.Fatalf("expected cached entry with ttl, got %v %v", cache.data, cache.lastTTL)
	}

	if err := svc.Invalidate(context.Background()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := svc.Active(context.Background()); err != nil {
		t.Fatalf("active: %v", err)
	}
	if lister.calls != 2 {
		t.Fatalf("expected refetch after invalidate, got %d calls", lister.calls)
	}
}

func TestActiveIgnoresCacheFailures(t *testing.T) {
	lister := &stubLister{list: []Category{{CategoryName: "Kids"}}}
	cache := newMemCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := NewService(ServiceParams{Lister: lister, Cache: cache})

	list, err := svc.Active(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("cache failures must not surface: %v %v", list, err)
	}
}

func TestActiveWithoutCache(t *testing.T) {
	lister := &stubLister{err: errors.New("boom")}
	svc := NewService(ServiceParams{Lister: lister})
	if _, err := svc.Active(context.Background()); err == nil {
		t.Fatalf("expected lister error")
	}
	if err := svc.Invalidate(context.Background()); err != nil {
		t.Fatalf("invalidate without cache should be a no-op: %v", err)
	}
	if got := svc.SizeOptions("Kids"); len(got) != 4 {
		t.Fatalf("unexpected sizes %v", got)
	}
}
