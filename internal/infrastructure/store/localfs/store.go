package localfs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/genoslab/docregress/internal/core/domain"
)

// Store keeps one JSON file per baseline key under baseDir and rebase
// artifacts under rebaseDir. Baseline writes are atomic: the record lands in
// a temporary file in the same directory and is renamed into place, so a
// crash mid-write never leaves a corrupt or partial baseline.
type Store struct {
	baseDir   string
	rebaseDir string
}

func New(baseDir, rebaseDir string) (*Store, error) {
	if baseDir == "" {
		baseDir = "./testdata/baselines"
	}
	if rebaseDir == "" {
		rebaseDir = filepath.Join(filepath.Dir(baseDir), "rebase")
	}
	for _, dir := range []string{baseDir, rebaseDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create baseline dir: %w", err)
		}
	}
	return &Store{baseDir: baseDir, rebaseDir: rebaseDir}, nil
}

func (s *Store) Load(_ context.Context, format, sampleID string) (*domain.Baseline, error) {
	path := s.baselinePath(format, sampleID)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.WrapError(domain.ErrBaselineNotFound, "load baseline",
				fmt.Errorf("%s does not exist; run mode=%s to create it", path, domain.ModeUpdateBaseline))
		}
		return nil, fmt.Errorf("read baseline %s: %w", path, err)
	}

	baseline := &domain.Baseline{Format: format, SampleID: sampleID}
	if err := json.Unmarshal(raw, baseline); err != nil {
		return nil, fmt.Errorf("decode baseline %s: %w", path, err)
	}
	return baseline, nil
}

func (s *Store) Save(_ context.Context, baseline *domain.Baseline) error {
	return s.writeAtomic(s.baselinePath(baseline.Format, baseline.SampleID), baseline)
}

func (s *Store) SaveRebase(_ context.Context, baseline *domain.Baseline) error {
	path := filepath.Join(s.rebaseDir, baseline.Key()+".json")
	return s.writeAtomic(path, baseline)
}

func (s *Store) baselinePath(format, sampleID string) string {
	return filepath.Join(s.baseDir, domain.BaselineKey(format, sampleID)+".json")
}

func (s *Store) writeAtomic(path string, baseline *domain.Baseline) error {
	data, err := json.MarshalIndent(baseline, "", "  ")
	if err != nil {
		return domain.WrapError(domain.ErrStoreWrite, "encode baseline", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return domain.WrapError(domain.ErrStoreWrite, "write temp baseline", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return domain.WrapError(domain.ErrStoreWrite, "replace baseline", err)
	}
	return nil
}
