package pipeline

import (
	"github.com/mincehq/mince/internal/core/domain"
	"github.com/mincehq/mince/internal/predicate"
)

// DefaultTest selects .js assets, optionally followed by a query string.
const DefaultTest = `\.js(\?.*)?$`

// ExtractOptions configures license-comment extraction.
// A nil *ExtractOptions on Options disables extraction entirely.
type ExtractOptions struct {
	// Condition decides which comments are extracted. When zero, the
	// comment-preservation spec is promoted to the extract condition and
	// nothing stays inline.
	Condition predicate.Spec

	// Filename names the sidecar asset explicitly. It takes precedence
	// over FilenameFunc. When both are unset the sidecar is named
	// <sourceFile>.LICENSE.
	Filename string

	// FilenameFunc derives the sidecar name from the source file name.
	FilenameFunc func(source string) string

	// Banner is the explicit banner text. It takes precedence over
	// BannerFunc. When both are unset a default banner referencing the
	// sidecar is used.
	Banner string

	// BannerFunc derives the banner text from the sidecar name.
	BannerFunc func(sidecar string) string

	// DisableBanner suppresses the banner entirely.
	DisableBanner bool
}

// Options is the pipeline configuration. It is read once at construction;
// all defaults are merged by DefaultOptions and validation happens in New.
type Options struct {
	// Test selects candidate files by name.
	Test predicate.Spec

	// WarningFilter decides which engine warnings surface. It is
	// evaluated against the warning text.
	WarningFilter predicate.Spec

	// SourceMap enables source-map consumption for diagnostics and
	// propagation of regenerated maps.
	SourceMap bool

	// Mangle enables identifier renaming in the engine.
	Mangle bool

	// TopLevel extends transformation to top-level declarations.
	TopLevel bool

	// Comments decides which comments survive inline in the output.
	Comments predicate.Spec

	// Extract configures sidecar extraction; nil disables it.
	Extract *ExtractOptions

	// ECMA is passed through to the engine (0 = engine default).
	ECMA int
}

// DefaultOptions returns the documented defaults: .js selection, all
// warnings surfaced, source maps and mangling on, top-level off,
// preservation annotations kept inline, extraction disabled.
func DefaultOptions() Options {
	return Options{
		Test:          predicate.String(DefaultTest),
		WarningFilter: predicate.Bool(true),
		SourceMap:     true,
		Mangle:        true,
		Comments:      DefaultComments(),
	}
}

// DefaultComments preserves annotation comments: text starting with "!"
// or mentioning @preserve/@license.
func DefaultComments() predicate.Spec {
	return predicate.Fn(func(value string) bool {
		return domain.Comment{Value: value}.IsAnnotation()
	})
}
