package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"mas-astro/nightwatch/internal/common"
	"mas-astro/nightwatch/internal/metrics"
)

const (
	apodCacheKey = "nasa:apod"
	apodCacheTTL = 1 * time.Hour
)

// APOD is NASA's Astronomy Picture of the Day.
type APOD struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl"`
	MediaType   string `json:"media_type"`
	Date        string `json:"date"`
	Copyright   string `json:"copyright"`
}

// NASAProvider fetches content from the NASA open APIs.
type NASAProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
}

// NewNASAProvider creates a NASA API provider. The cache is optional; APOD
// changes once a day so responses are cached aggressively.
func NewNASAProvider(apiKey string, cache common.CacheInterface, reg *metrics.MetricsRegistry) *NASAProvider {
	return &NASAProvider{
		BaseURL: "https://api.nasa.gov",
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:   cache,
		metrics: reg,
	}
}

// GetAPOD fetches today's Astronomy Picture of the Day, via the cache when
// one is configured.
func (p *NASAProvider) GetAPOD(ctx context.Context) (*APOD, error) {
	if p.cache == nil {
		return p.fetchAPOD(ctx)
	}

	fetched := false
	val, err := p.cache.GetOrSet(apodCacheKey, apodCacheTTL, func() (any, error) {
		fetched = true
		return p.fetchAPOD(ctx)
	})
	if err != nil {
		return nil, err
	}
	if fetched {
		p.countCache(false)
		return val.(*APOD), nil
	}
	p.countCache(true)

	// A Redis hit arrives as decoded JSON, not as *APOD; an unusable entry
	// is dropped and refetched.
	apod, ok := decodeCachedAPOD(val)
	if !ok {
		p.cache.Delete(apodCacheKey)
		apod, err := p.fetchAPOD(ctx)
		if err != nil {
			return nil, err
		}
		p.cache.Set(apodCacheKey, apod, apodCacheTTL)
		return apod, nil
	}
	return apod, nil
}

func (p *NASAProvider) fetchAPOD(ctx context.Context) (*APOD, error) {
	endpoint := fmt.Sprintf("/planetary/apod?api_key=%s", url.QueryEscape(p.APIKey))

	var apod APOD
	if err := p.doGET(ctx, endpoint, &apod); err != nil {
		return nil, err
	}
	if apod.Title == "" {
		return nil, &ProviderError{
			Code:    ErrCodeInvalidDataFormat,
			Message: "APOD response missing title",
		}
	}
	return &apod, nil
}

// decodeCachedAPOD recovers a typed APOD from whatever shape the cache
// returned: the in-memory cache hands back the stored pointer, Redis hands
// back the JSON round-trip of it.
func decodeCachedAPOD(val interface{}) (*APOD, bool) {
	if apod, ok := val.(*APOD); ok {
		return apod, true
	}
	data, err := json.Marshal(val)
	if err != nil {
		return nil, false
	}
	var apod APOD
	if err := json.Unmarshal(data, &apod); err != nil || apod.Title == "" {
		return nil, false
	}
	return &apod, true
}

func (p *NASAProvider) countCache(hit bool) {
	if p.metrics == nil {
		return
	}
	if hit {
		p.metrics.CacheHitsTotal.WithLabelValues(apodCacheKey).Inc()
	} else {
		p.metrics.CacheMissesTotal.WithLabelValues(apodCacheKey).Inc()
	}
}

func (p *NASAProvider) doGET(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+endpoint, nil)
	if err != nil {
		return &ProviderError{Code: ErrCodeHTTPFailure, Message: "failed to build request", Err: err}
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return &ProviderError{Code: ErrCodeHTTPFailure, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{
			Code:    ErrCodeBadStatus,
			Message: fmt.Sprintf("unexpected status %d from NASA API", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{Code: ErrCodeInvalidDataFormat, Message: "failed to decode response", Err: err}
	}
	return nil
}
