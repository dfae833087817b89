package ports

import (
	"context"

	"github.com/genoslab/docregress/internal/core/domain"
)

// BaselineStore persists and retrieves accepted baselines keyed by
// (format, sample id). Injected so tests can substitute an in-memory store.
type BaselineStore interface {
	// Load fails with domain.ErrBaselineNotFound when no record exists;
	// callers must never substitute a default.
	Load(ctx context.Context, format, sampleID string) (*domain.Baseline, error)
	// Save atomically overwrites the authoritative baseline for its key.
	Save(ctx context.Context, baseline *domain.Baseline) error
	// SaveRebase writes a non-authoritative inspection artifact for its key,
	// overwriting any prior one. Rebase artifacts are never read back.
	SaveRebase(ctx context.Context, baseline *domain.Baseline) error
}

// Extractor produces the ordered raw vector sequence for a sample document.
type Extractor interface {
	Extract(ctx context.Context, samplePath string) ([]domain.RawVector, error)
}

// SampleSource enumerates sample documents per format from a directory tree.
type SampleSource interface {
	Discover(ctx context.Context, root string, formats []string) ([]domain.Sample, error)
}

// RunHistory records evaluation outcomes for later inspection.
type RunHistory interface {
	RecordOutcome(ctx context.Context, outcome *domain.Outcome) error
}

// EvaluationQueue distributes samples to worker processes.
type EvaluationQueue interface {
	PublishSample(ctx context.Context, sample domain.Sample) error
	SubscribeSamples(ctx context.Context, handler func(context.Context, domain.Sample) error) error
	Close()
}
