package pathing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"geoport-delivery/internal/domain"
	"geoport-delivery/internal/platform/obs"
	"geoport-delivery/internal/ports"
	"log"
	"net/http"
	"strings"
	"time"
)

const DefaultOSRMBaseURL = "https://router.project-osrm.org"

// OSRMPathProvider implements PathProvider using an OSRM route service.
//
// Responses are optionally kept in a RouteCache keyed by the request.
// The provider is safe for concurrent use.
type OSRMPathProvider struct {
	session     *http.Client
	baseURL     string
	profile     string
	userAgent   string
	cache       ports.RouteCache
	maxAttempts int
	backoff     time.Duration
}

type Option func(*OSRMPathProvider)

func WithHTTPClient(c *http.Client) Option {
	return func(o *OSRMPathProvider) { o.session = c }
}

func WithProfile(profile string) Option {
	return func(o *OSRMPathProvider) { o.profile = profile }
}

func WithCache(c ports.RouteCache) Option {
	return func(o *OSRMPathProvider) { o.cache = c }
}

func WithUserAgent(ua string) Option {
	return func(o *OSRMPathProvider) { o.userAgent = ua }
}

// WithRetry sets the attempt count and the initial backoff.
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(o *OSRMPathProvider) {
		o.maxAttempts = maxAttempts
		o.backoff = backoff
	}
}

func NewOSRMPathProvider(baseURL string, opts ...Option) (*OSRMPathProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base url is empty")
	}

	provider := &OSRMPathProvider{
		session:     &http.Client{Timeout: 10 * time.Second},
		baseURL:     baseURL,
		profile:     "driving",
		maxAttempts: 3,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(provider)
	}
	if provider.maxAttempts < 1 {
		provider.maxAttempts = 1
	}

	return provider, nil
}

type osrmResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Geometry struct {
		Coordinates [][]float64 `json:"coordinates"`
	} `json:"geometry"`
}

// CacheKey identifies a request: profile, waypoints at 1e-6 degree and the
// alternatives flag.
func CacheKey(profile string, waypoints []domain.Coordinate, alternatives bool) string {
	var sb strings.Builder
	sb.WriteString(profile)
	sb.WriteByte('|')
	sb.WriteString(encodeWaypoints(waypoints))
	if alternatives {
		sb.WriteString("|alt")
	}
	return sb.String()
}

func encodeWaypoints(waypoints []domain.Coordinate) string {
	parts := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		parts = append(parts, fmt.Sprintf("%.6f,%.6f", w.Lon, w.Lat))
	}
	return strings.Join(parts, ";")
}

func (o *OSRMPathProvider) GetRoutes(
	ctx context.Context,
	waypoints []domain.Coordinate,
	alternatives bool,
) (_ []ports.PathResult, err error) {
	defer obs.Time(ctx, "osrm.GetRoutes")(&err)

	if len(waypoints) < 2 {
		return nil, errors.New("get OSRM routes: at least two waypoints are required")
	}

	key := CacheKey(o.profile, waypoints, alternatives)
	if o.cache != nil {
		hit, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			log.Printf("route cache read failed: %v", err)
		} else if ok {
			return hit, nil
		}
	}

	routes, err := o.fetchRoutes(ctx, waypoints, alternatives)
	if err != nil {
		return nil, fmt.Errorf("get OSRM routes: %w", err)
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, routes); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return routes, nil
}

func (o *OSRMPathProvider) fetchRoutes(
	ctx context.Context,
	waypoints []domain.Coordinate,
	alternatives bool,
) ([]ports.PathResult, error) {
	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s?alternatives=%t&geometries=geojson&overview=full&steps=false",
		o.baseURL, o.profile, encodeWaypoints(waypoints), alternatives,
	)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodGet, endpoint)
	})
	if err != nil {
		return nil, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	var rr osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("decode route response: %w", err)
	}

	if rr.Code != "Ok" {
		return nil, fmt.Errorf("route service returned code %q: %s", rr.Code, rr.Message)
	}
	if len(rr.Routes) == 0 {
		return nil, errors.New("route service returned no routes")
	}

	out := make([]ports.PathResult, 0, len(rr.Routes))
	for _, r := range rr.Routes {
		geometry := make([]domain.Coordinate, 0, len(r.Geometry.Coordinates))
		for _, pair := range r.Geometry.Coordinates {
			c, ok := domain.CoordinateFromList(pair)
			if !ok {
				continue
			}
			geometry = append(geometry, c)
		}

		out = append(out, ports.PathResult{
			Geometry:        geometry,
			DistanceMeters:  r.Distance,
			DurationSeconds: r.Duration,
		})
	}

	return out, nil
}
