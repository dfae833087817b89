package domain

import "fmt"

// Baseline is the accepted-reference snapshot for one (format, sample) pair:
// all vectors plus derived summary statistics. It is immutable once stored
// except through an explicit wholesale overwrite.
type Baseline struct {
	Format            string         `json:"-"`
	SampleID          string         `json:"-"`
	NumVectors        int            `json:"num_vectors"`
	LabelDistribution map[string]int `json:"label_distribution"`
	TotalCharacters   int            `json:"total_characters"`
	Vectors           []Vector       `json:"vectors"`
}

// Key serializes the baseline identity to its storage name.
func (b *Baseline) Key() string {
	return BaselineKey(b.Format, b.SampleID)
}

func BaselineKey(format, sampleID string) string {
	return fmt.Sprintf("%s_%s", format, sampleID)
}

// Validate checks the structural invariants every baseline must hold,
// current or stored. A violation is a normalizer or store defect, not a
// comparison finding.
func (b *Baseline) Validate() error {
	if b.NumVectors != len(b.Vectors) {
		return fmt.Errorf("num_vectors=%d does not match len(vectors)=%d", b.NumVectors, len(b.Vectors))
	}
	sum := 0
	for _, n := range b.LabelDistribution {
		sum += n
	}
	if sum != b.NumVectors {
		return fmt.Errorf("label_distribution sums to %d, want %d", sum, b.NumVectors)
	}
	return nil
}
