// Package esbuild adapts the esbuild transform API to the Minifier port.
package esbuild

import (
	"context"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/mincehq/mince/internal/comments"
	"github.com/mincehq/mince/internal/core/domain"
	"github.com/mincehq/mince/internal/core/ports/driven"
)

// Ensure Engine implements the port.
var _ driven.Minifier = (*Engine)(nil)

// Engine minifies JavaScript via esbuild's in-process transform.
//
// Comment classification runs over the engine's own token scan of the
// input, in source order, before the transform strips all comments.
// Comments the visitor preserves are hoisted above the minified output.
type Engine struct{}

// New creates an esbuild-backed engine.
func New() *Engine {
	return &Engine{}
}

// Name identifies the engine in translated diagnostics.
func (e *Engine) Name() string {
	return "esbuild"
}

// Minify transforms one file's source text.
func (e *Engine) Minify(ctx context.Context, name, source string, opts driven.MinifyOptions) (*driven.MinifyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.MinifyError{Message: err.Error()}
	}

	var preserved []string
	if opts.Comments != nil {
		for _, c := range comments.Scan(source) {
			if opts.Comments(c) {
				preserved = append(preserved, c.Text())
			}
		}
	}

	result := api.Transform(source, e.transformOptions(name, opts))
	if len(result.Errors) > 0 {
		return nil, toMinifyError(result.Errors[0])
	}

	code := string(result.Code)
	if len(preserved) > 0 {
		code = strings.Join(preserved, "\n") + "\n" + code
	}

	warnings := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, formatMessage(w))
	}

	return &driven.MinifyResult{
		Code:      code,
		SourceMap: result.Map,
		Warnings:  warnings,
	}, nil
}

func (e *Engine) transformOptions(name string, opts driven.MinifyOptions) api.TransformOptions {
	t := api.TransformOptions{
		Loader:           api.LoaderJS,
		Sourcefile:       name,
		MinifyWhitespace: true,
		MinifySyntax:     true,
		// The classifier owns comment survival; strip everything here and
		// let Minify re-attach what it preserved.
		LegalComments: api.LegalCommentsNone,
		LogLevel:      api.LogLevelSilent,
	}

	if opts.Mangle {
		t.MinifyIdentifiers = true
	}
	if opts.TopLevel {
		t.TreeShaking = api.TreeShakingTrue
	}
	if opts.SourceMap {
		t.Sourcemap = api.SourceMapExternal
	}
	if target, ok := ecmaTarget(opts.ECMA); ok {
		t.Target = target
	}

	return t
}

// ecmaTarget maps a configured ECMA edition to an esbuild target.
func ecmaTarget(ecma int) (api.Target, bool) {
	switch ecma {
	case 5:
		return api.ES5, true
	case 2015, 6:
		return api.ES2015, true
	case 2016:
		return api.ES2016, true
	case 2017:
		return api.ES2017, true
	case 2018:
		return api.ES2018, true
	case 2019:
		return api.ES2019, true
	case 2020:
		return api.ES2020, true
	case 2021:
		return api.ES2021, true
	case 2022:
		return api.ES2022, true
	default:
		return 0, false
	}
}

// toMinifyError converts an esbuild message to the structured failure shape.
// esbuild locations are 1-based lines and 0-based columns, matching the
// pipeline's convention.
func toMinifyError(msg api.Message) *domain.MinifyError {
	e := &domain.MinifyError{Message: msg.Text, Detail: formatMessage(msg)}
	if msg.Location != nil {
		e.Line = msg.Location.Line
		e.Column = msg.Location.Column
		e.HasPosition = true
	}
	return e
}

func formatMessage(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	var b strings.Builder
	b.WriteString(msg.Text)
	if msg.Location.LineText != "" {
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(msg.Location.LineText))
	}
	return b.String()
}
