package geocoder

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/abhinandan-jain01/NearMart/internal/cache"
	"github.com/abhinandan-jain01/NearMart/internal/config"
	"github.com/abhinandan-jain01/NearMart/internal/logger"
)

var (
	ErrConfigInvalid   = errors.New("geocoder config invalid")
	ErrRequestFailed   = errors.New("geocoder request failed")
	ErrResponseInvalid = errors.New("geocoder response invalid")
	ErrRateLimited     = errors.New("geocoder rate limited")
	ErrNoResult        = errors.New("geocoder found no result")
)

// Client resolves addresses through a Nominatim-compatible search endpoint.
// Results are cached in Redis and outbound calls go through a token bucket.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries int
	backoff    time.Duration
	cacheTTL   time.Duration
	httpClient *http.Client
	bucket     *TokenBucket
}

// NewClient creates the geocoding client.
func NewClient(cfg *config.GeocoderConfig) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrConfigInvalid
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	backoff := time.Duration(cfg.RetryBackoffMS) * time.Millisecond
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		maxRetries: cfg.MaxRetries,
		backoff:    backoff,
		cacheTTL:   cacheTTL,
		httpClient: &http.Client{Timeout: timeout},
		bucket:     NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitBurst),
	}, nil
}

// Geocode resolves one address. Cache hits skip the upstream entirely.
func (c *Client) Geocode(ctx context.Context, address string) (*Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrConfigInvalid
	}

	cacheKey := "geocode:" + hashAddress(address)
	var cached Location
	hit, err := cache.GetJSON(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warnw("geocode_cache_read_failed", "error", err)
	}
	if hit {
		return &cached, nil
	}

	if !c.bucket.Allow() {
		return nil, ErrRateLimited
	}

	location, err := c.lookup(ctx, address)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, cacheKey, location, c.cacheTTL); err != nil {
		logger.Warnw("geocode_cache_write_failed", "error", err)
	}
	return location, nil
}

func (c *Client) lookup(ctx context.Context, address string) (*Location, error) {
	attempts := c.maxRetries
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}
		location, retryable, err := c.doRequest(ctx, address)
		if err == nil {
			return location, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrRequestFailed, lastErr)
}

func (c *Client) doRequest(ctx context.Context, address string) (*Location, bool, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	endpoint := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "nearmart-backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("http status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if len(results) == 0 {
		return nil, false, ErrNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, false, fmt.Errorf("%w: bad latitude", ErrResponseInvalid)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, false, fmt.Errorf("%w: bad longitude", ErrResponseInvalid)
	}
	return &Location{Latitude: lat, Longitude: lon}, false, nil
}

func hashAddress(address string) string {
	sum := sha1.Sum([]byte(strings.ToLower(address)))
	return hex.EncodeToString(sum[:])
}
