package ports

import (
	"context"
	"geo-forensics-service/internal/domain"
)

// Coordinates and labelling produced by a single resolver strategy.
type Resolution struct {
	Coordinates  domain.Coordinates
	Provenance   domain.Provenance
	Label        string
	Description  string
	RawModelText *string
}

// Contract for one strategy in the resolution chain.
//
// Resolve returns an error wrapping domain.ErrNoCoordinate when the strategy
// simply has nothing to offer for the image; the pipeline then moves on to the
// next strategy. Any other error is a per-item failure.
type CoordinateResolver interface {
	Name() string
	Resolve(ctx context.Context, src domain.EvidenceSource) (Resolution, error)
}

// Optional extension of CoordinateResolver for strategies that depend on
// configuration. Ready is checked once per batch before any image is processed.
type ReadinessChecker interface {
	Ready() error
}
