// Package discovery enumerates sample documents from a directory tree.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/genoslab/docregress/internal/core/domain"
)

// Scanner maps file extensions to formats and derives sample IDs from file
// stems, so `regression_test/report.pdf` becomes the (pdf, report) key.
type Scanner struct{}

func New() *Scanner {
	return &Scanner{}
}

func (s *Scanner) Discover(ctx context.Context, root string, formats []string) ([]domain.Sample, error) {
	wanted := make(map[string]bool, len(formats))
	for _, f := range formats {
		wanted[strings.ToLower(strings.TrimSpace(f))] = true
	}

	var samples []domain.Sample
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(d.Name())), ".")
		if !wanted[ext] {
			return nil
		}
		stem := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		samples = append(samples, domain.Sample{Format: ext, ID: stem, Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover samples under %s: %w", root, err)
	}

	// Stable batch order regardless of filesystem iteration.
	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Format != samples[j].Format {
			return samples[i].Format < samples[j].Format
		}
		return samples[i].ID < samples[j].ID
	})
	return samples, nil
}
