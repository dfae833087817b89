package usecase

import (
	"fmt"

	"github.com/genoslab/docregress/internal/core/domain"
)

// Normalize converts raw extraction output into the canonical baseline
// schema: vector order preserved, labels tallied, character counts summed.
// A vector missing its label or order index is a defect in the extraction
// adapter and fails immediately with domain.ErrMalformedExtraction; it is
// never a regression finding.
func Normalize(format, sampleID string, raw []domain.RawVector) (*domain.Baseline, error) {
	baseline := &domain.Baseline{
		Format:            format,
		SampleID:          sampleID,
		NumVectors:        len(raw),
		LabelDistribution: make(map[string]int, 8),
		Vectors:           make([]domain.Vector, 0, len(raw)),
	}

	for i, rv := range raw {
		if rv.Label == nil {
			return nil, domain.WrapError(domain.ErrMalformedExtraction, "normalize",
				fmt.Errorf("vector %d of %s has no label", i, domain.BaselineKey(format, sampleID)))
		}
		if rv.OrderIndex == nil {
			return nil, domain.WrapError(domain.ErrMalformedExtraction, "normalize",
				fmt.Errorf("vector %d of %s has no order index", i, domain.BaselineKey(format, sampleID)))
		}

		v := domain.Vector{
			OrderIndex: *rv.OrderIndex,
			Label:      *rv.Label,
			Text:       rv.Text,
			BBox:       rv.BBox,
		}
		baseline.Vectors = append(baseline.Vectors, v)
		baseline.LabelDistribution[v.Label]++
		baseline.TotalCharacters += v.CharCount()
	}

	if err := baseline.Validate(); err != nil {
		return nil, domain.WrapError(domain.ErrMalformedExtraction, "normalize", err)
	}
	return baseline, nil
}
