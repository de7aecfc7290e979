package ports

import "context"

// Port: persistent cache of provider path responses keyed by request.
type RouteCache interface {
	// Return the cached paths for key, and whether the key was present.
	Get(ctx context.Context, key string) ([]PathResult, bool, error)
	// Store paths for key, replacing any previous entry.
	Put(ctx context.Context, key string, routes []PathResult) error
}
