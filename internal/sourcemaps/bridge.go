// Package sourcemaps resolves the best-available (source, map) pair for an
// asset and answers position lookups against the map. Lookups serve
// diagnostics only; this package never generates a mapping.
package sourcemaps

import (
	"fmt"

	"github.com/go-sourcemap/sourcemap"

	"github.com/mincehq/mince/internal/core/domain"
)

// Bridge obtains source text and provenance information for assets.
type Bridge struct {
	enabled bool
}

// NewBridge creates a bridge. When enabled is false, Resolve skips map
// extraction entirely and no provenance tracking happens.
func NewBridge(enabled bool) *Bridge {
	return &Bridge{enabled: enabled}
}

// Resolve returns the asset's current text and, when provenance is enabled
// and a map is attached, a position lookup over it. An unparsable map is
// reported as a warning on the compilation and the asset proceeds without
// provenance; it never fails the file.
func (b *Bridge) Resolve(comp *domain.Compilation, asset *domain.Asset) (string, *Lookup) {
	if !b.enabled || len(asset.SourceMap) == 0 {
		return asset.Content, nil
	}

	consumer, err := sourcemap.Parse(asset.Name+".map", asset.SourceMap)
	if err != nil {
		comp.AddWarning(fmt.Errorf("%s contains invalid source map: %w", asset.Name, err))
		return asset.Content, nil
	}

	return asset.Content, &Lookup{consumer: consumer}
}

// Lookup answers original-position queries against one parsed source map.
type Lookup struct {
	consumer *sourcemap.Consumer
}

// OriginalPositionFor maps a generated (line, column) back to an original
// source position. Absence of a mapping is not an error: ok is false and
// the caller falls back to the generated position.
func (l *Lookup) OriginalPositionFor(line, column int) (domain.Position, bool) {
	if l == nil {
		return domain.Position{}, false
	}

	source, _, origLine, origColumn, ok := l.consumer.Source(line, column)
	if !ok || source == "" {
		return domain.Position{}, false
	}

	return domain.Position{Source: source, Line: origLine, Column: origColumn}, true
}
