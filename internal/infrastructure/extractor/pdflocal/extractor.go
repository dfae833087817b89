// Package pdflocal extracts plain per-page text vectors from PDF samples
// without calling the remote pipeline. It sees no layout model, so every
// vector carries the generic text label; it exists for environments where
// the extraction service is unreachable and for fast smoke baselines.
package pdflocal

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/genoslab/docregress/internal/core/domain"
)

const labelText = "text"

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, samplePath string) ([]domain.RawVector, error) {
	f, reader, err := pdf.Open(samplePath)
	if err != nil {
		return nil, fmt.Errorf("open pdf sample: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	vectors := make([]domain.RawVector, 0, total)
	for pageNum := 1; pageNum <= total; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract text from page %d: %w", pageNum, err)
		}

		idx := len(vectors)
		label := labelText
		vectors = append(vectors, domain.RawVector{
			OrderIndex: &idx,
			Label:      &label,
			Text:       strings.TrimSpace(content),
			BBox:       &domain.BoundingBox{Page: pageNum},
		})
	}
	return vectors, nil
}
