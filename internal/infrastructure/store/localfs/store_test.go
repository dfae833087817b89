package localfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/genoslab/docregress/internal/core/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := New(filepath.Join(root, "baselines"), filepath.Join(root, "rebase"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return store, root
}

func sampleBaseline() *domain.Baseline {
	return &domain.Baseline{
		Format:            "pdf",
		SampleID:          "report",
		NumVectors:        2,
		LabelDistribution: map[string]int{"title": 1, "text": 1},
		TotalCharacters:   16,
		Vectors: []domain.Vector{
			{OrderIndex: 0, Label: "title", Text: "Report"},
			{OrderIndex: 1, Label: "text", Text: "Body here.", BBox: &domain.BoundingBox{Page: 1, Left: 1, Top: 2, Right: 3, Bottom: 4}},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleBaseline()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "baselines", "pdf_report.json")); err != nil {
		t.Fatalf("baseline file missing: %v", err)
	}

	got, err := store.Load(ctx, "pdf", "report")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := sampleBaseline()
	if got.NumVectors != want.NumVectors || got.TotalCharacters != want.TotalCharacters {
		t.Fatalf("summary fields lost in round trip: %+v", got)
	}
	if len(got.Vectors) != 2 || got.Vectors[1].Text != "Body here." {
		t.Fatalf("vectors lost in round trip: %+v", got.Vectors)
	}
	if got.Vectors[1].BBox == nil || got.Vectors[1].BBox.Page != 1 {
		t.Fatalf("bounding box must pass through storage: %+v", got.Vectors[1].BBox)
	}
	if got.LabelDistribution["title"] != 1 || got.LabelDistribution["text"] != 1 {
		t.Fatalf("label distribution lost: %v", got.LabelDistribution)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("loaded baseline invalid: %v", err)
	}
}

func TestLoadMissingIsBaselineNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(context.Background(), "docx", "nope")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrBaselineNotFound) {
		t.Fatalf("expected ErrBaselineNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), string(domain.ModeUpdateBaseline)) {
		t.Fatalf("message must name the remediation: %v", err)
	}
}

func TestSaveOverwritesWholesale(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleBaseline()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	replacement := &domain.Baseline{
		Format: "pdf", SampleID: "report",
		NumVectors:        1,
		LabelDistribution: map[string]int{"text": 1},
		TotalCharacters:   3,
		Vectors:           []domain.Vector{{OrderIndex: 0, Label: "text", Text: "new"}},
	}
	if err := store.Save(ctx, replacement); err != nil {
		t.Fatalf("Save(replacement) error = %v", err)
	}

	got, err := store.Load(ctx, "pdf", "report")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.NumVectors != 1 || len(got.LabelDistribution) != 1 {
		t.Fatalf("save must replace the record wholesale, not merge: %+v", got)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	store, root := newTestStore(t)

	if err := store.Save(context.Background(), sampleBaseline()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	entries, err := os.ReadDir(filepath.Join(root, "baselines"))
	if err != nil {
		t.Fatalf("ReadDir error = %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestRebaseArtifactIsSeparateFromBaseline(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveRebase(ctx, sampleBaseline()); err != nil {
		t.Fatalf("SaveRebase() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "rebase", "pdf_report.json")); err != nil {
		t.Fatalf("rebase artifact missing: %v", err)
	}

	// The authoritative location stays untouched.
	if _, err := store.Load(ctx, "pdf", "report"); !domain.IsKind(err, domain.ErrBaselineNotFound) {
		t.Fatalf("rebase must not create an authoritative baseline, got %v", err)
	}
}

func TestRebaseOverwritesUnconditionally(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveRebase(ctx, sampleBaseline()); err != nil {
		t.Fatalf("SaveRebase() error = %v", err)
	}
	second := sampleBaseline()
	second.Vectors[0].Text = "Changed"
	if err := store.SaveRebase(ctx, second); err != nil {
		t.Fatalf("SaveRebase(second) error = %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(root, "rebase", "pdf_report.json"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !strings.Contains(string(raw), "Changed") {
		t.Fatalf("artifact not overwritten: %s", raw)
	}
}
