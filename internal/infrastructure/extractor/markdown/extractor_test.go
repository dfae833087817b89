package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleDoc = `# Quarterly Report

Revenue grew in every region.

## Details

- north region
- south region

` + "```" + `
SELECT region, SUM(revenue) FROM sales;
` + "```" + `

Closing remarks here.
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestExtractLabelsAndOrder(t *testing.T) {
	ex := New()
	vectors, err := ex.Extract(context.Background(), writeSample(t, sampleDoc))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	wantLabels := []string{
		"section_header", // Quarterly Report
		"text",           // Revenue grew...
		"section_header", // Details
		"list_item",      // north region
		"list_item",      // south region
		"code",           // SELECT ...
		"text",           // Closing remarks
	}
	if len(vectors) != len(wantLabels) {
		t.Fatalf("got %d vectors, want %d: %+v", len(vectors), len(wantLabels), vectors)
	}
	for i, v := range vectors {
		if v.Label == nil || *v.Label != wantLabels[i] {
			t.Fatalf("vector %d label = %v, want %s", i, v.Label, wantLabels[i])
		}
		if v.OrderIndex == nil || *v.OrderIndex != i {
			t.Fatalf("vector %d order index = %v", i, v.OrderIndex)
		}
	}
	if vectors[0].Text != "Quarterly Report" {
		t.Fatalf("heading text = %q", vectors[0].Text)
	}
	if vectors[3].Text != "north region" {
		t.Fatalf("list item text = %q", vectors[3].Text)
	}
	if vectors[5].Text != "SELECT region, SUM(revenue) FROM sales;" {
		t.Fatalf("code text = %q", vectors[5].Text)
	}
}

func TestExtractTable(t *testing.T) {
	doc := `| Region | Revenue |
| --- | --- |
| north | 120 |
| south | 90 |
`
	ex := New()
	vectors, err := ex.Extract(context.Background(), writeSample(t, doc))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(vectors) != 1 {
		t.Fatalf("got %d vectors, want 1: %+v", len(vectors), vectors)
	}
	if *vectors[0].Label != "table" {
		t.Fatalf("label = %q, want table", *vectors[0].Label)
	}
	want := "Region | Revenue\nnorth | 120\nsouth | 90"
	if vectors[0].Text != want {
		t.Fatalf("table text = %q, want %q", vectors[0].Text, want)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	ex := New()
	path := writeSample(t, sampleDoc)

	first, err := ex.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := ex.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text || *first[i].Label != *second[i].Label {
			t.Fatalf("vector %d differs between runs", i)
		}
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	ex := New()
	vectors, err := ex.Extract(context.Background(), writeSample(t, ""))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(vectors) != 0 {
		t.Fatalf("empty document should yield no vectors: %+v", vectors)
	}
}

func TestExtractMissingFile(t *testing.T) {
	ex := New()
	if _, err := ex.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
