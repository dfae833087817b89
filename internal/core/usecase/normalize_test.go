package usecase

import (
	"testing"

	"github.com/genoslab/docregress/internal/core/domain"
)

func rawVec(i int, label, text string) domain.RawVector {
	return domain.RawVector{OrderIndex: &i, Label: &label, Text: text}
}

func TestNormalizeBuildsBaseline(t *testing.T) {
	raw := []domain.RawVector{
		rawVec(0, "title", "Report"),
		rawVec(1, "text", "Body paragraph."),
		rawVec(2, "text", "Second paragraph."),
		rawVec(3, "picture", ""),
	}

	b, err := Normalize("pdf", "sample-1", raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if b.Key() != "pdf_sample-1" {
		t.Fatalf("Key() = %q, want pdf_sample-1", b.Key())
	}
	if b.NumVectors != 4 || len(b.Vectors) != 4 {
		t.Fatalf("NumVectors = %d, len(Vectors) = %d, want 4", b.NumVectors, len(b.Vectors))
	}
	if b.LabelDistribution["text"] != 2 || b.LabelDistribution["title"] != 1 || b.LabelDistribution["picture"] != 1 {
		t.Fatalf("LabelDistribution = %v", b.LabelDistribution)
	}
	want := len("Report") + len("Body paragraph.") + len("Second paragraph.")
	if b.TotalCharacters != want {
		t.Fatalf("TotalCharacters = %d, want %d", b.TotalCharacters, want)
	}
	for i, v := range b.Vectors {
		if v.OrderIndex != i {
			t.Fatalf("vector %d has OrderIndex %d, order not preserved", i, v.OrderIndex)
		}
	}
}

func TestNormalizeCountsRunesNotBytes(t *testing.T) {
	b, err := Normalize("hwpx", "s", []domain.RawVector{rawVec(0, "text", "한국어")})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if b.TotalCharacters != 3 {
		t.Fatalf("TotalCharacters = %d, want 3 runes", b.TotalCharacters)
	}
}

func TestNormalizeMissingLabelIsMalformed(t *testing.T) {
	idx := 0
	_, err := Normalize("pdf", "s", []domain.RawVector{{OrderIndex: &idx, Text: "abc"}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrMalformedExtraction) {
		t.Fatalf("expected ErrMalformedExtraction, got %v", err)
	}
}

func TestNormalizeMissingOrderIndexIsMalformed(t *testing.T) {
	label := "text"
	_, err := Normalize("pdf", "s", []domain.RawVector{{Label: &label, Text: "abc"}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrMalformedExtraction) {
		t.Fatalf("expected ErrMalformedExtraction, got %v", err)
	}
}

func TestNormalizeEmptyOutput(t *testing.T) {
	b, err := Normalize("md", "empty", nil)
	if err != nil {
		t.Fatalf("Normalize(nil) error = %v", err)
	}
	if b.NumVectors != 0 || b.TotalCharacters != 0 || len(b.LabelDistribution) != 0 {
		t.Fatalf("empty extraction should normalize to an empty baseline: %+v", b)
	}
}
