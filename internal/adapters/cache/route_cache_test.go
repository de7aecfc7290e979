package cache

import (
	"context"
	"geoport-delivery/internal/domain"
	"geoport-delivery/internal/platform/db"
	"geoport-delivery/internal/ports"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var sampleRoutes = []ports.PathResult{
	{
		Geometry: []domain.Coordinate{
			{Lat: 39.965, Lon: 32.78},
			{Lat: 39.97, Lon: 32.8},
		},
		DistanceMeters:  2500,
		DurationSeconds: 300,
	},
	{
		Geometry: []domain.Coordinate{
			{Lat: 39.965, Lon: 32.78},
			{Lat: 39.96, Lon: 32.79},
			{Lat: 39.97, Lon: 32.8},
		},
		DistanceMeters:  3100,
		DurationSeconds: 0,
	},
}

func newSqliteCache(t *testing.T, ttl time.Duration) *SqliteRouteCache {
	t.Helper()

	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "routes.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := InitSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	// Running it twice must be harmless.
	if err := InitSchema(conn); err != nil {
		t.Fatalf("init schema again: %v", err)
	}

	return NewSqliteRouteCache(conn, ttl)
}

func assertSameRoutes(t *testing.T, got, want []ports.PathResult) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("routes = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].DistanceMeters != want[i].DistanceMeters || got[i].DurationSeconds != want[i].DurationSeconds {
			t.Fatalf("route %d = %+v, want %+v", i, got[i], want[i])
		}
		if len(got[i].Geometry) != len(want[i].Geometry) {
			t.Fatalf("route %d geometry = %d points, want %d", i, len(got[i].Geometry), len(want[i].Geometry))
		}
		for j := range want[i].Geometry {
			if got[i].Geometry[j] != want[i].Geometry[j] {
				t.Fatalf("route %d point %d = %+v, want %+v", i, j, got[i].Geometry[j], want[i].Geometry[j])
			}
		}
	}
}

func TestSqliteRouteCacheRoundTrip(t *testing.T) {
	c := newSqliteCache(t, 0)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "driving|a"); err != nil || ok {
		t.Fatalf("empty cache Get = ok %v, err %v; want miss", ok, err)
	}

	if err := c.Put(ctx, "driving|a", sampleRoutes); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "driving|a")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v; want hit", ok, err)
	}
	assertSameRoutes(t, got, sampleRoutes)

	// Put replaces the previous entry.
	if err := c.Put(ctx, "driving|a", sampleRoutes[:1]); err != nil {
		t.Fatalf("put replace: %v", err)
	}
	got, _, _ = c.Get(ctx, "driving|a")
	assertSameRoutes(t, got, sampleRoutes[:1])
}

func TestSqliteRouteCacheExpires(t *testing.T) {
	c := newSqliteCache(t, time.Hour)
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Put(ctx, "k", sampleRoutes); err != nil {
		t.Fatalf("put: %v", err)
	}

	now = now.Add(30 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Fatalf("expected hit within ttl")
	}

	now = now.Add(time.Hour)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after ttl")
	}
}

func TestSqliteRouteCacheRejectsEmptyKey(t *testing.T) {
	c := newSqliteCache(t, 0)

	if err := c.Put(context.Background(), "  ", sampleRoutes); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if _, _, err := c.Get(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestRedisRouteCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	c := NewRedisRouteCache(client, time.Hour)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("empty cache Get = ok %v, err %v; want miss", ok, err)
	}

	if err := c.Put(ctx, "k", sampleRoutes); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v; want hit", ok, err)
	}
	assertSameRoutes(t, got, sampleRoutes)

	if ttl := mr.TTL(redisKeyPrefix + "k"); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
	}

	mr.FastForward(2 * time.Hour)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after ttl")
	}
}

func TestSeedFromJSON(t *testing.T) {
	c := newSqliteCache(t, 0)

	path := filepath.Join(t.TempDir(), "routes.json")
	seed := `[
		{"key": "driving|a|alt", "routes": [{"geometry": [{"lat": 1, "lon": 2}, {"lat": 3, "lon": 4}], "distance_meters": 1000, "duration_seconds": 60}]},
		{"key": "driving|b", "routes": [{"geometry": [], "distance_meters": 2000, "duration_seconds": 0}]}
	]`
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	n, err := SeedFromJSON(context.Background(), c, path)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 2 {
		t.Fatalf("seeded = %d, want 2", n)
	}

	got, ok, err := c.Get(context.Background(), "driving|a|alt")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v; want hit", ok, err)
	}
	if got[0].DistanceMeters != 1000 || got[0].Geometry[1].Lon != 4 {
		t.Fatalf("seeded route = %+v", got[0])
	}
}

func TestSeedFromJSONRejectsEmptyKey(t *testing.T) {
	c := newSqliteCache(t, 0)

	path := filepath.Join(t.TempDir(), "routes.json")
	if err := os.WriteFile(path, []byte(`[{"key": "", "routes": [{}]}]`), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	if _, err := SeedFromJSON(context.Background(), c, path); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
