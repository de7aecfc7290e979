package main

import (
	"context"
	"database/sql"
	"flag"
	"geoport-delivery/internal/adapters/cache"
	"geoport-delivery/internal/config"
	"geoport-delivery/internal/platform/db"
	"geoport-delivery/internal/ports"
	"log"
	"strings"
)

// dbtool prepares the SQL route cache: schema creation and, optionally,
// warming it with recorded route responses.
func main() {
	config.LoadEnv()

	backend := flag.String("backend", config.Get("ROUTE_CACHE", config.CacheSQLite), "sqlite or postgres")
	seedPath := flag.String("seed", config.Get("SEED_PATH", ""), "JSON file of recorded route responses")
	flag.Parse()

	ttl, err := config.GetDuration("ROUTE_CACHE_TTL", 0)
	if err != nil {
		log.Fatal(err)
	}

	var conn *sql.DB
	var routeCache ports.RouteCache

	switch strings.ToLower(*backend) {
	case config.CacheSQLite:
		conn, err = db.OpenSQLite(config.Get("DB_PATH", "data/routes.db"))
		if err != nil {
			log.Fatal(err)
		}
		routeCache = cache.NewSqliteRouteCache(conn, ttl)

	case config.CachePostgres:
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			log.Fatal("DATABASE_URL is required")
		}
		conn, err = db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		routeCache = cache.NewSQLRouteCache(conn, ttl)

	default:
		log.Fatalf("unsupported backend %q", *backend)
	}
	defer conn.Close()

	if err := initAndSeed(context.Background(), conn, routeCache, *seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, routeCache ports.RouteCache, seedPath string) error {
	log.Println("Initializing route cache schema...")
	if err := cache.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if seedPath == "" {
		return nil
	}

	log.Println("Seeding route cache...")
	n, err := cache.SeedFromJSON(ctx, routeCache, seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. entries=%d", n)

	return nil
}
