package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/genoslab/docregress/internal/core/domain"
	"github.com/genoslab/docregress/internal/core/ports"
)

// EvaluateUseCase orchestrates the baseline lifecycle for single samples and
// batches. The store is injected, never ambient, so tests run against an
// in-memory substitute.
type EvaluateUseCase struct {
	store     ports.BaselineStore
	extractor ports.Extractor
	history   ports.RunHistory
	policies  map[string]CheckPolicy
	logger    *slog.Logger
}

func NewEvaluateUseCase(
	store ports.BaselineStore,
	extractor ports.Extractor,
	history ports.RunHistory,
	policies map[string]CheckPolicy,
	logger *slog.Logger,
) *EvaluateUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &EvaluateUseCase{
		store:     store,
		extractor: extractor,
		history:   history,
		policies:  policies,
		logger:    logger,
	}
}

// EvaluateSample runs one sample through exactly one lifecycle mode.
//
// The returned outcome is non-nil whenever extraction and normalization
// succeeded; err carries the sample's failure (regression report, missing
// baseline, store fault). Regression never mutates the store; rebase never
// fails the sample.
func (uc *EvaluateUseCase) EvaluateSample(ctx context.Context, sample domain.Sample, mode domain.Mode) (*domain.Outcome, error) {
	return uc.evaluate(ctx, sample, mode, uuid.NewString())
}

func (uc *EvaluateUseCase) evaluate(ctx context.Context, sample domain.Sample, mode domain.Mode, runID string) (*domain.Outcome, error) {
	started := time.Now()

	current, err := uc.extractAndNormalize(ctx, sample)
	if err != nil {
		return nil, err
	}

	outcome := &domain.Outcome{
		RunID:    runID,
		Format:   sample.Format,
		SampleID: sample.ID,
		Mode:     mode,
		Passed:   true,
	}

	switch mode {
	case domain.ModeRegression:
		err = uc.runRegression(ctx, sample, current, outcome)
	case domain.ModeUpdateBaseline:
		err = uc.runUpdateBaseline(ctx, sample, current)
	case domain.ModeRebase:
		err = uc.runRebase(ctx, sample, current)
	default:
		return nil, domain.WrapError(domain.ErrConfiguration, "evaluate sample",
			fmt.Errorf("unknown mode %q", mode))
	}

	outcome.Duration = time.Since(started)
	if err != nil {
		outcome.Passed = false
		outcome.Err = err.Error()
	}
	uc.record(ctx, outcome)
	return outcome, err
}

func (uc *EvaluateUseCase) extractAndNormalize(ctx context.Context, sample domain.Sample) (*domain.Baseline, error) {
	raw, err := uc.extractor.Extract(ctx, sample.Path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", sample.Key(), err)
	}
	current, err := Normalize(sample.Format, sample.ID, raw)
	if err != nil {
		return nil, err
	}
	return current, nil
}

func (uc *EvaluateUseCase) runRegression(ctx context.Context, sample domain.Sample, current *domain.Baseline, outcome *domain.Outcome) error {
	baseline, err := uc.store.Load(ctx, sample.Format, sample.ID)
	if err != nil {
		if domain.IsKind(err, domain.ErrBaselineNotFound) {
			return domain.WrapError(domain.ErrBaselineNotFound, "load baseline",
				fmt.Errorf("no baseline for %s; run mode=%s for this sample to create one", sample.Key(), domain.ModeUpdateBaseline))
		}
		return fmt.Errorf("load baseline %s: %w", sample.Key(), err)
	}
	if err := baseline.Validate(); err != nil {
		return fmt.Errorf("stored baseline %s is inconsistent: %w", sample.Key(), err)
	}

	findings := Compare(current, baseline, uc.policy(sample.Format))
	outcome.Findings = findings
	outcome.Report = BuildReport(sample.Key(), findings)
	return EvaluateFindings(sample.Key(), findings)
}

func (uc *EvaluateUseCase) runUpdateBaseline(ctx context.Context, sample domain.Sample, current *domain.Baseline) error {
	if err := uc.store.Save(ctx, current); err != nil {
		return fmt.Errorf("save baseline %s: %w", sample.Key(), err)
	}
	uc.logger.Info("baseline updated",
		"key", sample.Key(),
		"vectors", current.NumVectors,
		"characters", current.TotalCharacters,
	)
	return nil
}

func (uc *EvaluateUseCase) runRebase(ctx context.Context, sample domain.Sample, current *domain.Baseline) error {
	if err := uc.store.SaveRebase(ctx, current); err != nil {
		return fmt.Errorf("save rebase artifact %s: %w", sample.Key(), err)
	}
	uc.logger.Info("rebase artifact written", "key", sample.Key())
	return nil
}

func (uc *EvaluateUseCase) policy(format string) CheckPolicy {
	if p, ok := uc.policies[format]; ok {
		return p
	}
	return DefaultPolicy()
}

func (uc *EvaluateUseCase) record(ctx context.Context, outcome *domain.Outcome) {
	if uc.history == nil {
		return
	}
	if err := uc.history.RecordOutcome(ctx, outcome); err != nil {
		uc.logger.Warn("record outcome", "key", outcome.Key(), "error", err)
	}
}

// EvaluateBatch evaluates every sample independently under the same run ID.
// One sample's failure never aborts the batch; the boolean is the
// conjunction of per-sample results (true means every sample passed).
func (uc *EvaluateUseCase) EvaluateBatch(ctx context.Context, samples []domain.Sample, mode domain.Mode) ([]*domain.Outcome, bool) {
	runID := uuid.NewString()
	outcomes := make([]*domain.Outcome, 0, len(samples))
	allPassed := true

	for _, sample := range samples {
		outcome, err := uc.evaluate(ctx, sample, mode, runID)
		if outcome == nil {
			outcome = &domain.Outcome{
				RunID:    runID,
				Format:   sample.Format,
				SampleID: sample.ID,
				Mode:     mode,
				Passed:   false,
			}
			if err != nil {
				outcome.Err = err.Error()
			}
			uc.record(ctx, outcome)
		}
		outcomes = append(outcomes, outcome)

		if err != nil {
			allPassed = false
			uc.logger.Error("sample failed", "key", sample.Key(), "mode", mode, "error", err)
		} else {
			uc.logger.Info("sample passed", "key", sample.Key(), "mode", mode)
		}
	}
	return outcomes, allPassed
}
