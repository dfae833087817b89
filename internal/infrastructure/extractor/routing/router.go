// Package routing dispatches extraction by document format so local and
// remote adapters can serve one run side by side.
package routing

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/genoslab/docregress/internal/core/domain"
	"github.com/genoslab/docregress/internal/core/ports"
)

// Router implements the Extractor port by delegating to the adapter
// registered for the sample's format, derived from the path extension.
type Router struct {
	byFormat map[string]ports.Extractor
	fallback ports.Extractor
}

// New builds a router; fallback handles every format without a dedicated
// adapter and may be nil when only mapped formats are expected.
func New(byFormat map[string]ports.Extractor, fallback ports.Extractor) *Router {
	return &Router{byFormat: byFormat, fallback: fallback}
}

func (r *Router) Extract(ctx context.Context, samplePath string) ([]domain.RawVector, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(samplePath)), ".")
	if ex, ok := r.byFormat[format]; ok {
		return ex.Extract(ctx, samplePath)
	}
	if r.fallback != nil {
		return r.fallback.Extract(ctx, samplePath)
	}
	return nil, domain.WrapError(domain.ErrConfiguration, "route extractor",
		fmt.Errorf("no extractor for format %q", format))
}
