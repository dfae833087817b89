package usecase

import (
	"github.com/genoslab/docregress/internal/core/domain"
)

// CheckPolicy tunes the comparison per document format. Formats with known
// nondeterministic output (OCR-backed HWPX) disable the similarity check
// outright instead of loosening its threshold.
type CheckPolicy struct {
	SimilarityDisabled   bool
	SimilarityThreshold  float64
	CharTolerancePercent int
	Scorer               Scorer
}

func DefaultPolicy() CheckPolicy {
	return CheckPolicy{
		SimilarityThreshold:  0.85,
		CharTolerancePercent: 5,
		Scorer:               SequenceRatio,
	}
}

// Compare runs the four checks between a current normalized result and the
// stored baseline. Every check runs even when earlier ones fail: the whole
// point is surfacing all drift in one pass.
func Compare(current, baseline *domain.Baseline, policy CheckPolicy) []domain.Finding {
	if policy.Scorer == nil {
		policy.Scorer = SequenceRatio
	}
	if policy.SimilarityThreshold == 0 {
		policy.SimilarityThreshold = 0.85
	}
	if policy.CharTolerancePercent == 0 {
		policy.CharTolerancePercent = 5
	}

	var findings []domain.Finding

	if current.NumVectors != baseline.NumVectors {
		findings = append(findings, domain.VectorCountFinding(current.NumVectors, baseline.NumVectors))
	}

	if f, ok := compareDistributions(current.LabelDistribution, baseline.LabelDistribution); !ok {
		findings = append(findings, f)
	}

	if f, ok := compareCharacterCounts(current.TotalCharacters, baseline.TotalCharacters, policy.CharTolerancePercent); !ok {
		findings = append(findings, f)
	}

	if !policy.SimilarityDisabled {
		if f, ok := compareTexts(current.Vectors, baseline.Vectors, policy); !ok {
			findings = append(findings, f)
		}
	}

	return findings
}

// compareDistributions checks exact multiset equality. A label present on one
// side only counts as a mismatch with an effective count of zero on the other.
func compareDistributions(current, baseline map[string]int) (domain.Finding, bool) {
	equal := len(current) == len(baseline)
	if equal {
		for label, n := range baseline {
			if current[label] != n {
				equal = false
				break
			}
		}
	}
	if equal {
		return domain.Finding{}, true
	}
	return domain.LabelDistributionFinding(current, baseline), false
}

// compareCharacterCounts applies the relative tolerance with integer math so
// the boundary (exactly tolerance percent) passes without float rounding.
// A zero-character baseline tolerates nothing: any nonzero current fails.
func compareCharacterCounts(current, baseline, tolerancePercent int) (domain.Finding, bool) {
	diff := current - baseline
	if diff < 0 {
		diff = -diff
	}
	if baseline == 0 {
		if current == 0 {
			return domain.Finding{}, true
		}
		return domain.CharacterCountFinding(current, baseline, 100, tolerancePercent), false
	}
	if diff*100 <= tolerancePercent*baseline {
		return domain.Finding{}, true
	}
	deltaPercent := float64(diff) / float64(baseline) * 100
	return domain.CharacterCountFinding(current, baseline, deltaPercent, tolerancePercent), false
}

// compareTexts scores pairwise over the overlapping prefix, so partial
// information survives even when the vector counts already diverged.
func compareTexts(current, baseline []domain.Vector, policy CheckPolicy) (domain.Finding, bool) {
	n := len(current)
	if len(baseline) < n {
		n = len(baseline)
	}

	var failures []domain.SimilarityFailure
	for i := 0; i < n; i++ {
		score := policy.Scorer(current[i].Text, baseline[i].Text)
		if score < policy.SimilarityThreshold {
			failures = append(failures, domain.SimilarityFailure{Index: i, Score: score})
		}
	}
	if len(failures) == 0 {
		return domain.Finding{}, true
	}
	return domain.TextSimilarityFinding(failures, policy.SimilarityThreshold), false
}
