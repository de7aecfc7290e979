package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"geoport-delivery/internal/ports"
	"os"
	"strings"
)

// InitSchema creates the route cache table. The statements are valid for
// both SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        cache_key TEXT PRIMARY KEY,
        payload TEXT NOT NULL,
        stored_at BIGINT NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_cache_stored_at
    ON route_cache(stored_at);
	`

	statements := []string{
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// RouteSeed is one recorded provider response.
type RouteSeed struct {
	Key    string             `json:"key"`
	Routes []ports.PathResult `json:"routes"`
}

// SeedFromJSON warms a route cache with recorded provider responses so the
// game can run against known paths without network access.
func SeedFromJSON(ctx context.Context, c ports.RouteCache, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed routes: read %q: %w", jsonPath, err)
	}

	var data []RouteSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed routes: parse json: %w", err)
	}

	for i, item := range data {
		key := strings.TrimSpace(item.Key)
		if key == "" {
			return i, fmt.Errorf("seed routes: item at index %d: key cannot be empty", i+1)
		}
		if len(item.Routes) == 0 {
			return i, fmt.Errorf("seed routes: item %q: routes cannot be empty", key)
		}

		if err := c.Put(ctx, key, item.Routes); err != nil {
			return i, fmt.Errorf("seed routes: put %q: %w", key, err)
		}
	}

	return len(data), nil
}

func encodeRoutes(routes []ports.PathResult) (string, error) {
	b, err := json.Marshal(routes)
	if err != nil {
		return "", fmt.Errorf("encode routes: %w", err)
	}
	return string(b), nil
}

func decodeRoutes(payload string) ([]ports.PathResult, error) {
	var routes []ports.PathResult
	if err := json.Unmarshal([]byte(payload), &routes); err != nil {
		return nil, fmt.Errorf("decode routes: %w", err)
	}
	return routes, nil
}
