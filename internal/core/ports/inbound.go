package ports

import (
	"context"

	"github.com/genoslab/docregress/internal/core/domain"
)

// SampleEvaluator is the inbound contract for evaluating a single sample in
// one lifecycle mode.
type SampleEvaluator interface {
	EvaluateSample(ctx context.Context, sample domain.Sample, mode domain.Mode) (*domain.Outcome, error)
}

// BatchEvaluator runs many samples with per-sample failure isolation.
type BatchEvaluator interface {
	EvaluateBatch(ctx context.Context, samples []domain.Sample, mode domain.Mode) ([]*domain.Outcome, bool)
}
