package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geoport-delivery/internal/platform/obs"
	"geoport-delivery/internal/ports"
	"strings"
	"time"
)

// SQLRouteCache is a Postgres-backed cache for provider path responses.
type SQLRouteCache struct {
	DB  *sql.DB
	TTL time.Duration

	now func() time.Time
}

func NewSQLRouteCache(db *sql.DB, ttl time.Duration) *SQLRouteCache {
	return &SQLRouteCache{DB: db, TTL: ttl, now: time.Now}
}

func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ []ports.PathResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	var payload string
	var storedAt int64
	err = s.DB.QueryRowContext(ctx, `
	SELECT payload, stored_at
    FROM route_cache
    WHERE cache_key = $1;
	`, key).Scan(&payload, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	if expired(s.now(), storedAt, s.TTL) {
		return nil, false, nil
	}

	routes, err := decodeRoutes(payload)
	if err != nil {
		return nil, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}
	return routes, true, nil
}

func (s *SQLRouteCache) Put(ctx context.Context, key string, routes []ports.PathResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	payload, err := encodeRoutes(routes)
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO route_cache (cache_key, payload, stored_at)
    VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		stored_at = EXCLUDED.stored_at;
	`, key, payload, s.now().Unix())
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
