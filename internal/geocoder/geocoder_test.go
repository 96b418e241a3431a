package geocoder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhinandan-jain01/NearMart/internal/config"
)

func newTestClient(t *testing.T, serverURL string, retries int) *Client {
	t.Helper()
	client, err := NewClient(&config.GeocoderConfig{
		BaseURL:         serverURL,
		TimeoutMS:       2000,
		MaxRetries:      retries,
		RetryBackoffMS:  1,
		CacheTTLSeconds: 60,
		RateLimitPerMin: 600,
		RateLimitBurst:  100,
	})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	return client
}

func TestGeocodeParsesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "1 Main St" {
			t.Errorf("query q want %q got %q", "1 Main St", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"12.9716","lon":"77.5946"}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)
	location, err := client.Geocode(context.Background(), "1 Main St")
	if err != nil {
		t.Fatalf("geocode failed: %v", err)
	}
	if location.Latitude != 12.9716 || location.Longitude != 77.5946 {
		t.Fatalf("unexpected location: %+v", location)
	}
}

func TestGeocodeNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)
	_, err := client.Geocode(context.Background(), "nowhere at all")
	if !errors.Is(err, ErrNoResult) {
		t.Fatalf("want ErrNoResult got %v", err)
	}
}

func TestGeocodeRetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"1.5","lon":"2.5"}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 3)
	location, err := client.Geocode(context.Background(), "retry street")
	if err != nil {
		t.Fatalf("geocode failed after retries: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls want 3 got %d", calls)
	}
	if location.Latitude != 1.5 || location.Longitude != 2.5 {
		t.Fatalf("unexpected location: %+v", location)
	}
}

func TestGeocodeRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"0.1","lon":"0.2"}]`))
	}))
	defer server.Close()

	client, err := NewClient(&config.GeocoderConfig{
		BaseURL:         server.URL,
		TimeoutMS:       2000,
		MaxRetries:      1,
		RetryBackoffMS:  1,
		RateLimitPerMin: 1,
		RateLimitBurst:  1,
	})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}

	if _, err := client.Geocode(context.Background(), "first call"); err != nil {
		t.Fatalf("first geocode failed: %v", err)
	}
	if _, err := client.Geocode(context.Background(), "second call"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("want ErrRateLimited got %v", err)
	}
}

func TestTokenBucketRefills(t *testing.T) {
	bucket := NewTokenBucket(600, 1)
	if !bucket.Allow() {
		t.Fatalf("first take should pass")
	}
	if bucket.Allow() {
		t.Fatalf("second immediate take should fail")
	}
}
