package ports

import (
	"context"
	"geo-forensics-service/internal/domain"
)

// Port: a cache of landmark identifications keyed by image content hash.
type LandmarkCache interface {
	// Return the cached landmark for key and whether it was found.
	Get(ctx context.Context, key string) (domain.Landmark, bool, error)
	// Store a landmark under key, replacing any previous entry.
	Put(ctx context.Context, key string, landmark domain.Landmark) error
}
