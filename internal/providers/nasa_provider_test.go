package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"mas-astro/nightwatch/internal/common"
	"mas-astro/nightwatch/internal/metrics"
)

// jsonCache stores values the way the Redis cache does: marshalled to JSON
// on Set, decoded into a bare interface{} on Get.
type jsonCache struct {
	store map[string][]byte
}

func newJSONCache() *jsonCache { return &jsonCache{store: map[string][]byte{}} }

func (c *jsonCache) Set(key string, value interface{}, _ time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.store[key] = data
}

func (c *jsonCache) Get(key string) (interface{}, bool) {
	data, ok := c.store[key]
	if !ok {
		return nil, false
	}
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false
	}
	return value, true
}

func (c *jsonCache) Delete(key string) { delete(c.store, key) }

func (c *jsonCache) GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error) {
	if val, found := c.Get(key); found {
		return val, nil
	}
	val, err := loader()
	if err != nil {
		return nil, err
	}
	c.Set(key, val, duration)
	return val, nil
}

func (c *jsonCache) Close() error { return nil }

func countingAPODServer(t *testing.T, requests *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requests, 1)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"title": "Pillars of Creation",
			"explanation": "A famous view.",
			"url": "https://example.org/apod.jpg",
			"media_type": "image",
			"date": "2026-08-31"
		}`))
	}))
}

func TestNASAProvider_GetAPOD_CacheHitSurvivesJSONRoundTrip(t *testing.T) {
	var requests int64
	server := countingAPODServer(t, &requests)
	defer server.Close()

	reg := metrics.NewMetricsRegistry()
	provider := &NASAProvider{
		BaseURL: server.URL,
		APIKey:  "k",
		Client:  &http.Client{},
		cache:   newJSONCache(),
		metrics: reg,
	}

	first, err := provider.GetAPOD(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := provider.GetAPOD(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := atomic.LoadInt64(&requests); got != 1 {
		t.Errorf("Expected 1 upstream request, got %d", got)
	}
	if second.Title != first.Title || second.URL != first.URL {
		t.Errorf("Expected cached APOD to match fetched one, got %+v", second)
	}

	if got := testutil.ToFloat64(reg.CacheMissesTotal.WithLabelValues(apodCacheKey)); got != 1 {
		t.Errorf("Expected 1 cache miss counted, got %v", got)
	}
	if got := testutil.ToFloat64(reg.CacheHitsTotal.WithLabelValues(apodCacheKey)); got != 1 {
		t.Errorf("Expected 1 cache hit counted, got %v", got)
	}
}

func TestNASAProvider_GetAPOD_CachesWithInMemoryStore(t *testing.T) {
	var requests int64
	server := countingAPODServer(t, &requests)
	defer server.Close()

	cache := common.NewCacheService(60, 60)
	defer cache.Close()

	provider := &NASAProvider{
		BaseURL: server.URL,
		APIKey:  "k",
		Client:  &http.Client{},
		cache:   cache,
	}

	for i := 0; i < 3; i++ {
		if _, err := provider.GetAPOD(context.Background()); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if got := atomic.LoadInt64(&requests); got != 1 {
		t.Errorf("Expected 1 upstream request, got %d", got)
	}
}

func TestNASAProvider_GetAPOD_DropsUnusableCacheEntry(t *testing.T) {
	var requests int64
	server := countingAPODServer(t, &requests)
	defer server.Close()

	cache := newJSONCache()
	cache.Set(apodCacheKey, 42, time.Hour)

	provider := &NASAProvider{
		BaseURL: server.URL,
		APIKey:  "k",
		Client:  &http.Client{},
		cache:   cache,
	}

	apod, err := provider.GetAPOD(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if apod.Title != "Pillars of Creation" {
		t.Errorf("Expected fetched APOD, got %+v", apod)
	}

	// The garbage entry was replaced, so the next call is served from cache
	if _, err := provider.GetAPOD(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := atomic.LoadInt64(&requests); got != 1 {
		t.Errorf("Expected 1 upstream request, got %d", got)
	}
}
