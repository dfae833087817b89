package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/genoslab/docregress/internal/core/domain"
	"github.com/genoslab/docregress/internal/core/usecase"
)

type policyFile struct {
	Formats map[string]policyEntry `yaml:"formats"`
}

type policyEntry struct {
	SimilarityDisabled   *bool    `yaml:"similarity_disabled"`
	SimilarityThreshold  *float64 `yaml:"similarity_threshold"`
	CharTolerancePercent *int     `yaml:"char_tolerance_percent"`
}

// LoadPolicies builds the per-format check policies. The built-in default
// disables text similarity for hwpx; a YAML file referenced by CHECKS_CONFIG
// overrides or extends the defaults per format.
func LoadPolicies(path string) (map[string]usecase.CheckPolicy, error) {
	hwpx := usecase.DefaultPolicy()
	hwpx.SimilarityDisabled = true
	policies := map[string]usecase.CheckPolicy{
		"hwpx": hwpx,
	}

	if path == "" {
		return policies, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrConfiguration, "read checks config", err)
	}
	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, domain.WrapError(domain.ErrConfiguration, "parse checks config", err)
	}

	for format, entry := range file.Formats {
		policy, ok := policies[format]
		if !ok {
			policy = usecase.DefaultPolicy()
		}
		if entry.SimilarityDisabled != nil {
			policy.SimilarityDisabled = *entry.SimilarityDisabled
		}
		if entry.SimilarityThreshold != nil {
			if *entry.SimilarityThreshold < 0 || *entry.SimilarityThreshold > 1 {
				return nil, domain.WrapError(domain.ErrConfiguration, "validate checks config",
					fmt.Errorf("format %s: similarity threshold %v out of [0, 1]", format, *entry.SimilarityThreshold))
			}
			policy.SimilarityThreshold = *entry.SimilarityThreshold
		}
		if entry.CharTolerancePercent != nil {
			if *entry.CharTolerancePercent < 0 {
				return nil, domain.WrapError(domain.ErrConfiguration, "validate checks config",
					fmt.Errorf("format %s: negative character tolerance %d", format, *entry.CharTolerancePercent))
			}
			policy.CharTolerancePercent = *entry.CharTolerancePercent
		}
		policies[format] = policy
	}
	return policies, nil
}
