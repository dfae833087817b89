package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/genoslab/docregress/internal/core/domain"
)

// BuildReport renders every finding as one numbered entry so all failures
// for a sample are visible in a single reading pass.
func BuildReport(sampleKey string, findings []domain.Finding) string {
	if len(findings) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d regression finding(s):\n", sampleKey, len(findings))
	for i, f := range findings {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, f.Check, f.Detail)
	}
	return sb.String()
}

// EvaluateFindings raises exactly one aggregated failure per sample,
// regardless of how many checks failed. Nil findings means pass.
func EvaluateFindings(sampleKey string, findings []domain.Finding) error {
	if len(findings) == 0 {
		return nil
	}
	return domain.WrapError(domain.ErrRegressionFailed, "evaluate "+sampleKey,
		errors.New(BuildReport(sampleKey, findings)))
}
