package driven

import (
	"context"

	"github.com/mincehq/mince/internal/core/domain"
)

// CommentVisitor is invoked by the engine once per encountered comment,
// in source order, during output formatting. Its return value decides
// whether the comment appears inline in the transformed output; extraction
// happens as a side effect inside the visitor.
type CommentVisitor func(c domain.Comment) bool

// MinifyOptions carries the per-file engine configuration.
type MinifyOptions struct {
	// Mangle enables identifier renaming.
	Mangle bool

	// TopLevel extends transformation to top-level declarations.
	TopLevel bool

	// SourceMap requests a regenerated source map for the output.
	SourceMap bool

	// Comments classifies comments during output formatting.
	// A nil visitor drops every comment.
	Comments CommentVisitor

	// ECMA is the language version the output must conform to (0 = engine default).
	ECMA int
}

// MinifyResult is a successful engine invocation.
// Warnings are threaded through explicitly so no process-wide capture
// hook is needed around each call.
type MinifyResult struct {
	// Code is the transformed text.
	Code string

	// SourceMap is the regenerated map JSON, present only when requested.
	SourceMap []byte

	// Warnings are non-fatal engine diagnostics for this file.
	Warnings []string
}

// Minifier is the external minification engine.
// On failure it returns a *domain.MinifyError carrying a generated
// position when one is known, or a message/detail otherwise.
type Minifier interface {
	// Name identifies the engine in translated diagnostics.
	Name() string

	// Minify transforms one file's source text.
	Minify(ctx context.Context, name, source string, opts MinifyOptions) (*MinifyResult, error)
}
