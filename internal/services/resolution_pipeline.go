package services

import (
	"context"
	"errors"
	"fmt"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/platform/obs"
	"geo-forensics-service/internal/ports"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
)

// Diagnostic explains why one image could not be placed on the track.
type Diagnostic struct {
	File    string             `json:"file"`
	Kind    domain.FailureKind `json:"kind"`
	Message string             `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.File, d.Kind, d.Message)
}

// ResolveResult is the outcome of one batch. It is owned by the caller.
type ResolveResult struct {
	BatchID     uuid.UUID
	Track       domain.Track
	Diagnostics []Diagnostic
	Resolved    int
	Failed      int
}

// TotalDistance is the track length in kilometres.
func (r ResolveResult) TotalDistance() float64 { return TotalDistance(r.Track) }

// ResolutionPipeline runs each image through an ordered chain of strategies.
// The first strategy to produce a coordinate wins.
type ResolutionPipeline struct {
	strategies []ports.CoordinateResolver
}

func NewResolutionPipeline(strategies ...ports.CoordinateResolver) *ResolutionPipeline {
	return &ResolutionPipeline{strategies: strategies}
}

// Strategies returns the strategy names in the order they are tried.
func (p *ResolutionPipeline) Strategies() []string {
	names := make([]string, 0, len(p.strategies))
	for _, s := range p.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Ready checks every strategy that reports readiness.
func (p *ResolutionPipeline) Ready() error {
	if len(p.strategies) == 0 {
		return errors.New("resolution pipeline has no strategies")
	}
	for _, s := range p.strategies {
		rc, ok := s.(ports.ReadinessChecker)
		if !ok {
			continue
		}
		if err := rc.Ready(); err != nil {
			return fmt.Errorf("strategy %s: %w", s.Name(), err)
		}
	}
	return nil
}

// Resolve processes sources sequentially, in submission order.
//
// A failing image is recorded as a Diagnostic and skipped; it never aborts
// the batch. Resolve only returns an error when a strategy is not ready (no
// image is processed) or when ctx is cancelled (the partial result is
// returned alongside ctx's error).
func (p *ResolutionPipeline) Resolve(
	ctx context.Context,
	sources []domain.EvidenceSource,
) (result ResolveResult, err error) {
	defer obs.Time(ctx, "pipeline.Resolve")(&err)

	result = ResolveResult{
		BatchID:     uuid.New(),
		Track:       make(domain.Track, 0, len(sources)),
		Diagnostics: []Diagnostic{},
	}

	if err := p.Ready(); err != nil {
		return result, fmt.Errorf("resolve batch: %w", err)
	}

	logger := slog.Default().With(slog.String("batch_id", result.BatchID.String()))

	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("resolve batch: stopped after %d of %d images: %w", i, len(sources), err)
		}

		item, err := p.resolveOne(ctx, src)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, fmt.Errorf("resolve batch: stopped after %d of %d images: %w", i, len(sources), ctxErr)
			}

			d := Diagnostic{File: src.Name, Kind: domain.KindOf(err), Message: err.Error()}
			result.Diagnostics = append(result.Diagnostics, d)
			result.Failed++

			logger.WarnContext(ctx, "evidence unresolved",
				slog.String("file", src.Name),
				slog.String("kind", string(d.Kind)),
				slog.Any("error", xerrors.New(err)),
			)
			continue
		}

		result.Track = append(result.Track, item)
		result.Resolved++

		logger.DebugContext(ctx, "evidence resolved",
			slog.String("file", src.Name),
			slog.String("provenance", string(item.Provenance)),
			slog.String("label", item.Label),
		)
	}

	logger.InfoContext(ctx, "batch resolved",
		slog.Int("images", len(sources)),
		slog.Int("resolved", result.Resolved),
		slog.Int("failed", result.Failed),
	)

	return result, nil
}

// resolveOne tries every strategy in order. A strategy reporting
// ErrNoCoordinate hands over silently; any other failure is remembered and
// the next strategy still gets a chance. The last real failure wins over an
// absent result.
func (p *ResolutionPipeline) resolveOne(ctx context.Context, src domain.EvidenceSource) (domain.EvidenceItem, error) {
	var absent, failure error

	for _, s := range p.strategies {
		res, err := s.Resolve(ctx, src)
		if err == nil {
			coords := res.Coordinates
			return domain.EvidenceItem{
				SourceFile:   src.Name,
				Coordinates:  &coords,
				Provenance:   res.Provenance,
				Label:        res.Label,
				Description:  res.Description,
				RawModelText: res.RawModelText,
			}, nil
		}

		if errors.Is(err, domain.ErrNoCoordinate) {
			absent = err
			continue
		}

		failure = fmt.Errorf("%s: %w", s.Name(), err)
		if ctx.Err() != nil {
			break
		}
	}

	if failure != nil {
		return domain.EvidenceItem{}, failure
	}
	if absent != nil {
		return domain.EvidenceItem{}, absent
	}
	return domain.EvidenceItem{}, domain.ErrNoCoordinate
}
