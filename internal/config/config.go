// Package config reads process settings from the environment (optionally
// populated from a .env file) and the game catalog from YAML.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q as float: %w", key, raw, err)
	}
	return v, nil
}

func GetInt64(key string, fallback int64) (int64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q as integer: %w", key, raw, err)
	}
	return v, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q as duration: %w", key, raw, err)
	}
	return v, nil
}

// Cache backends accepted by ROUTE_CACHE.
const (
	CacheNone     = "none"
	CacheSQLite   = "sqlite"
	CachePostgres = "postgres"
	CacheRedis    = "redis"
)

// Settings is the resolved server configuration.
type Settings struct {
	Port        string
	OSRMBaseURL string
	OSRMProfile string

	RouteCache    string
	DBPath        string
	DatabaseURL   string
	RedisAddr     string
	RouteCacheTTL time.Duration

	CatalogPath  string
	ReferenceLat float64
	ReferenceLon float64
	RNGSeed      int64
}

// LoadEnv loads a .env file when present. A missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Load resolves Settings from the environment.
func Load() (Settings, error) {
	s := Settings{
		Port:        Get("PORT", "8080"),
		OSRMBaseURL: Get("OSRM_BASE_URL", "https://router.project-osrm.org"),
		OSRMProfile: Get("OSRM_PROFILE", "driving"),
		RouteCache:  strings.ToLower(Get("ROUTE_CACHE", CacheSQLite)),
		DBPath:      Get("DB_PATH", "data/routes.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		RedisAddr:   Get("REDIS_ADDR", "localhost:6379"),
		CatalogPath: Get("CATALOG_PATH", ""),
	}

	var err error
	if s.RouteCacheTTL, err = GetDuration("ROUTE_CACHE_TTL", 24*time.Hour); err != nil {
		return Settings{}, err
	}
	if s.ReferenceLat, err = GetFloat("REFERENCE_LAT", 39.965); err != nil {
		return Settings{}, err
	}
	if s.ReferenceLon, err = GetFloat("REFERENCE_LON", 32.780); err != nil {
		return Settings{}, err
	}
	if s.RNGSeed, err = GetInt64("RNG_SEED", 0); err != nil {
		return Settings{}, err
	}

	switch s.RouteCache {
	case CacheNone, CacheSQLite, CacheRedis:
	case CachePostgres:
		if s.DatabaseURL == "" {
			return Settings{}, fmt.Errorf("config: ROUTE_CACHE=postgres requires DATABASE_URL")
		}
	default:
		return Settings{}, fmt.Errorf("config: unsupported ROUTE_CACHE %q", s.RouteCache)
	}

	return s, nil
}
