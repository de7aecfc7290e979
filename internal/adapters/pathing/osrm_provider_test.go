package pathing

import (
	"context"
	"errors"
	"geoport-delivery/internal/domain"
	"geoport-delivery/internal/ports"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const okBody = `{
	"code": "Ok",
	"routes": [
		{"distance": 2500.5, "duration": 300, "geometry": {"coordinates": [[32.78, 39.965], [32.79, 39.967], [32.8, 39.97]]}},
		{"distance": 3100, "duration": 410, "geometry": {"coordinates": [[32.78, 39.965], [32.8, 39.97]]}}
	]
}`

var (
	shop   = domain.Coordinate{Lat: 39.965, Lon: 32.78}
	target = domain.Coordinate{Lat: 39.97, Lon: 32.8}
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]ports.PathResult
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]ports.PathResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.data[key]
	return r, ok, nil
}

func (c *memoryCache) Put(ctx context.Context, key string, routes []ports.PathResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		c.data = make(map[string][]ports.PathResult)
	}
	c.data[key] = routes
	return nil
}

func newTestProvider(t *testing.T, url string, opts ...Option) *OSRMPathProvider {
	t.Helper()

	opts = append([]Option{WithRetry(3, time.Millisecond)}, opts...)
	p, err := NewOSRMPathProvider(url, opts...)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func TestOSRMGetRoutes(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(okBody))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	routes, err := p.GetRoutes(context.Background(), []domain.Coordinate{shop, target}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/route/v1/driving/32.780000,39.965000;32.800000,39.970000" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotQuery != "alternatives=true&geometries=geojson&overview=full&steps=false" {
		t.Fatalf("query = %q", gotQuery)
	}

	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if routes[0].DistanceMeters != 2500.5 || routes[0].DurationSeconds != 300 {
		t.Fatalf("route 0 = %+v", routes[0])
	}
	if len(routes[0].Geometry) != 3 {
		t.Fatalf("geometry points = %d, want 3", len(routes[0].Geometry))
	}
	if routes[0].Geometry[1] != (domain.Coordinate{Lat: 39.967, Lon: 32.79}) {
		t.Fatalf("geometry[1] = %+v, want lat/lon swapped from [lon,lat]", routes[0].Geometry[1])
	}
}

func TestOSRMNonOkCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoRoute","message":"Impossible route","routes":[]}`))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	if _, err := p.GetRoutes(context.Background(), []domain.Coordinate{shop, target}, false); err == nil {
		t.Fatalf("expected error for code NoRoute")
	}
}

func TestOSRMMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":`))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	if _, err := p.GetRoutes(context.Background(), []domain.Coordinate{shop, target}, false); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestOSRMRetriesTransientStatus(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(okBody))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	routes, err := p.GetRoutes(context.Background(), []domain.Coordinate{shop, target}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("hits = %d, want 2", got)
	}
}

func TestOSRMDoesNotRetryClientError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "bad coordinates", http.StatusBadRequest)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	_, err := p.GetRoutes(context.Background(), []domain.Coordinate{shop, target}, true)
	if err == nil {
		t.Fatalf("expected error")
	}

	var he *httpStatusError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want wrapped httpStatusError 400", err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("hits = %d, want 1", got)
	}
}

func TestOSRMGivesUpAfterMaxAttempts(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)

	if _, err := p.GetRoutes(context.Background(), []domain.Coordinate{shop, target}, true); err == nil {
		t.Fatalf("expected error")
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Fatalf("hits = %d, want 3", got)
	}
}

func TestOSRMServesFromCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(okBody))
	}))
	defer srv.Close()

	cache := &memoryCache{}
	p := newTestProvider(t, srv.URL, WithCache(cache))
	waypoints := []domain.Coordinate{shop, target}

	first, err := p.GetRoutes(context.Background(), waypoints, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.GetRoutes(context.Background(), waypoints, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("hits = %d, want 1", got)
	}
	if len(second) != len(first) || second[0].DistanceMeters != first[0].DistanceMeters {
		t.Fatalf("cached routes differ: %+v vs %+v", second, first)
	}

	// A different alternatives flag is a different request.
	if _, err := p.GetRoutes(context.Background(), waypoints, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("hits = %d, want 2", got)
	}
}

func TestOSRMRequiresTwoWaypoints(t *testing.T) {
	p := newTestProvider(t, "http://127.0.0.1:1")

	if _, err := p.GetRoutes(context.Background(), []domain.Coordinate{shop}, false); err == nil {
		t.Fatalf("expected error for a single waypoint")
	}
}

func TestCacheKey(t *testing.T) {
	got := CacheKey("driving", []domain.Coordinate{shop, target}, true)
	want := "driving|32.780000,39.965000;32.800000,39.970000|alt"
	if got != want {
		t.Fatalf("key = %q, want %q", got, want)
	}
}

func TestMockPathProviderShapes(t *testing.T) {
	mid := domain.Coordinate{Lat: (shop.Lat + target.Lat) / 2, Lon: (shop.Lon + target.Lon) / 2}

	m := &MockPathProvider{
		Primary:  []ports.PathResult{MockPath(shop, target, 1000, 60)},
		ViaSouth: []ports.PathResult{MockPath(shop, target, 3000, 180)},
	}
	ctx := context.Background()

	if r, err := m.GetRoutes(ctx, []domain.Coordinate{shop, target}, true); err != nil || r[0].DistanceMeters != 1000 {
		t.Fatalf("primary = %+v, %v", r, err)
	}
	if _, err := m.GetRoutes(ctx, []domain.Coordinate{shop, target}, false); !errors.Is(err, ErrMockUnavailable) {
		t.Fatalf("direct err = %v, want ErrMockUnavailable", err)
	}
	if _, err := m.GetRoutes(ctx, []domain.Coordinate{shop, mid.Offset(0.01, 0.01), target}, false); !errors.Is(err, ErrMockUnavailable) {
		t.Fatalf("via north err = %v, want ErrMockUnavailable", err)
	}
	if r, err := m.GetRoutes(ctx, []domain.Coordinate{shop, mid.Offset(-0.01, -0.01), target}, false); err != nil || r[0].DistanceMeters != 3000 {
		t.Fatalf("via south = %+v, %v", r, err)
	}
	if m.Calls() != 4 {
		t.Fatalf("calls = %d, want 4", m.Calls())
	}
}
