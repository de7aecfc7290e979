package main

import (
	"context"
	"errors"
	"fmt"
	"geoport-delivery/internal/adapters/cache"
	"geoport-delivery/internal/adapters/pathing"
	"geoport-delivery/internal/api"
	"geoport-delivery/internal/config"
	"geoport-delivery/internal/domain"
	"geoport-delivery/internal/platform/db"
	"geoport-delivery/internal/ports"
	"geoport-delivery/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires the OSRM provider and route cache behind ports, builds the game
// session and starts the HTTP and websocket server.
func main() {
	config.LoadEnv()

	settings, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	catalog, err := config.LoadCatalog(settings.CatalogPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	routeCache, closeCache, err := openRouteCache(ctx, settings)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	opts := []pathing.Option{pathing.WithProfile(settings.OSRMProfile)}
	if routeCache != nil {
		opts = append(opts, pathing.WithCache(routeCache))
	}
	provider, err := pathing.NewOSRMPathProvider(settings.OSRMBaseURL, opts...)
	if err != nil {
		log.Fatal(err)
	}

	rng := services.Locked(services.NewRand(settings.RNGSeed))
	builder := services.NewCandidateBuilder(
		provider,
		services.NewEventGenerator(catalog.Events, rng),
		services.DefaultBuilderConfig(),
	)

	hub := api.NewHub("system")
	go hub.Run(ctx)

	session := services.NewGameSession(services.SessionConfig{
		Catalog:   catalog,
		Reference: domain.Coordinate{Lat: settings.ReferenceLat, Lon: settings.ReferenceLon},
		Builder:   builder,
		Simulator: services.NewDeliverySimulator(),
		Rand:      rng,
		Observer:  hub,
	})

	router := api.NewRouter(session, hub)

	// Order selection waits on the route service, bounded by the builder's timeouts.
	log.Printf("Server listening addr=:%s session=%s cache=%s", settings.Port, session.ID(), settings.RouteCache)
	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		session.Abort()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openRouteCache builds the configured route cache backend. A nil cache
// means provider responses are not cached.
func openRouteCache(ctx context.Context, s config.Settings) (ports.RouteCache, func(), error) {
	noop := func() {}

	switch s.RouteCache {
	case config.CacheSQLite:
		conn, err := db.OpenSQLite(s.DBPath)
		if err != nil {
			return nil, noop, fmt.Errorf("open route cache: %w", err)
		}
		if err := cache.InitSchema(conn); err != nil {
			conn.Close()
			return nil, noop, fmt.Errorf("open route cache: %w", err)
		}
		return cache.NewSqliteRouteCache(conn, s.RouteCacheTTL), func() { conn.Close() }, nil

	case config.CachePostgres:
		conn, err := db.Open(s.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open route cache: %w", err)
		}
		return cache.NewSQLRouteCache(conn, s.RouteCacheTTL), func() { conn.Close() }, nil

	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{Addr: s.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("open route cache: ping redis %s: %w", s.RedisAddr, err)
		}
		return cache.NewRedisRouteCache(client, s.RouteCacheTTL), func() { client.Close() }, nil

	default:
		return nil, noop, nil
	}
}
