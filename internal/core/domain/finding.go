package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type CheckKind string

const (
	CheckVectorCount       CheckKind = "vector_count"
	CheckLabelDistribution CheckKind = "label_distribution"
	CheckCharacterCount    CheckKind = "character_count"
	CheckTextSimilarity    CheckKind = "text_similarity"
)

// Finding is one unit of disagreement between a current result and its
// baseline. Detail is pre-rendered so reports stay stable across runs.
type Finding struct {
	Check  CheckKind `json:"check"`
	Detail string    `json:"detail"`
}

// VectorCountFinding carries both counts.
func VectorCountFinding(current, baseline int) Finding {
	return Finding{
		Check:  CheckVectorCount,
		Detail: fmt.Sprintf("vector count mismatch: current=%d baseline=%d", current, baseline),
	}
}

// LabelDistributionFinding carries both full mappings, rendered with sorted
// keys so the same drift always produces the same report.
func LabelDistributionFinding(current, baseline map[string]int) Finding {
	return Finding{
		Check: CheckLabelDistribution,
		Detail: fmt.Sprintf("label distribution mismatch: current=%s baseline=%s",
			renderDistribution(current), renderDistribution(baseline)),
	}
}

// CharacterCountFinding carries both totals and the relative delta.
func CharacterCountFinding(current, baseline int, deltaPercent float64, tolerancePercent int) Finding {
	return Finding{
		Check: CheckCharacterCount,
		Detail: fmt.Sprintf("character count drift: current=%d baseline=%d (%.1f%% change, tolerance %d%%)",
			current, baseline, deltaPercent, tolerancePercent),
	}
}

// SimilarityFailure is one vector pair scoring below the threshold.
type SimilarityFailure struct {
	Index int
	Score float64
}

// reportedSimilarityFailures caps how many failing pairs a report embeds.
const reportedSimilarityFailures = 5

// TextSimilarityFinding embeds the first few failing (index, score) pairs and
// counts the rest, so the report stays readable however many vectors diverge.
func TextSimilarityFinding(failures []SimilarityFailure, threshold float64) Finding {
	var sb strings.Builder
	fmt.Fprintf(&sb, "text similarity below %.2f for %d vector(s):", threshold, len(failures))
	shown := failures
	if len(shown) > reportedSimilarityFailures {
		shown = shown[:reportedSimilarityFailures]
	}
	for _, f := range shown {
		fmt.Fprintf(&sb, " (index=%d score=%.4f)", f.Index, f.Score)
	}
	if rest := len(failures) - len(shown); rest > 0 {
		fmt.Fprintf(&sb, " ... and %d more", rest)
	}
	return Finding{Check: CheckTextSimilarity, Detail: sb.String()}
}

func renderDistribution(dist map[string]int) string {
	if len(dist) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, dist[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Outcome is the terminal result of evaluating one sample in one mode.
type Outcome struct {
	RunID    string        `json:"run_id"`
	Format   string        `json:"format"`
	SampleID string        `json:"sample_id"`
	Mode     Mode          `json:"mode"`
	Passed   bool          `json:"passed"`
	Findings []Finding     `json:"findings,omitempty"`
	Report   string        `json:"report,omitempty"`
	Err      string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

func (o *Outcome) Key() string {
	return BaselineKey(o.Format, o.SampleID)
}
