package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mincehq/mince/internal/comments"
	"github.com/mincehq/mince/internal/core/domain"
	"github.com/mincehq/mince/internal/core/ports/driven"
	"github.com/mincehq/mince/internal/predicate"
)

// stubEngine is a call-counting engine stand-in. It prefixes sources with
// "min:" and feeds the visitor every comment found by the scanner.
type stubEngine struct {
	calls    int
	failOn   map[string]error
	warnings []string
}

func (s *stubEngine) Name() string { return "stub" }

func (s *stubEngine) Minify(_ context.Context, name, source string, opts driven.MinifyOptions) (*driven.MinifyResult, error) {
	s.calls++
	if err := s.failOn[name]; err != nil {
		return nil, err
	}

	var preserved []string
	if opts.Comments != nil {
		for _, c := range comments.Scan(source) {
			if opts.Comments(c) {
				preserved = append(preserved, c.Text())
			}
		}
	}

	code := "min:" + source
	if len(preserved) > 0 {
		code = strings.Join(preserved, "\n") + "\n" + code
	}
	return &driven.MinifyResult{Code: code, Warnings: s.warnings}, nil
}

func newTestPipeline(t *testing.T, opts Options, engine driven.Minifier) *Pipeline {
	t.Helper()
	p, err := New(opts, engine, zerolog.Nop())
	require.NoError(t, err)
	return p
}

func compilationWith(assets ...*domain.Asset) *domain.Compilation {
	comp := domain.NewCompilation()
	for _, a := range assets {
		comp.AddAsset(a)
	}
	return comp
}

func TestNew_Validation(t *testing.T) {
	t.Run("nil engine", func(t *testing.T) {
		_, err := New(DefaultOptions(), nil, zerolog.Nop())
		assert.ErrorIs(t, err, domain.ErrNoMinifier)
	})

	t.Run("malformed test spec", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Test = predicate.String("(")
		_, err := New(opts, &stubEngine{}, zerolog.Nop())
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("malformed extract condition", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Extract = &ExtractOptions{Condition: predicate.String("(")}
		_, err := New(opts, &stubEngine{}, zerolog.Nop())
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})
}

func TestRun_Selection(t *testing.T) {
	engine := &stubEngine{}
	p := newTestPipeline(t, DefaultOptions(), engine)

	css := &domain.Asset{Name: "b.css", Content: "body{}"}
	js := &domain.Asset{Name: "a.js", Content: "var x = 1;"}
	comp := compilationWith(css, js)

	p.Run(context.Background(), comp, []string{"b.css", "a.js"})

	assert.Equal(t, "body{}", css.Content, "non-matching file stays byte-identical")
	assert.False(t, p.Processed("b.css"), "non-matching file never enters the cache")
	assert.Equal(t, "min:var x = 1;", js.Content)
	assert.True(t, p.Processed("a.js"))
	assert.Equal(t, 1, engine.calls)
}

func TestRun_QueryStringNames(t *testing.T) {
	engine := &stubEngine{}
	p := newTestPipeline(t, DefaultOptions(), engine)

	asset := &domain.Asset{Name: "bundle.js?v=abc123", Content: "var x = 1;"}
	comp := compilationWith(asset)

	p.Run(context.Background(), comp, []string{"bundle.js?v=abc123"})

	assert.Equal(t, 1, engine.calls, "default selection matches .js followed by a query string")
}

func TestRun_Idempotence(t *testing.T) {
	engine := &stubEngine{}
	p := newTestPipeline(t, DefaultOptions(), engine)

	asset := &domain.Asset{Name: "a.js", Content: "var x = 1;"}
	comp := compilationWith(asset)

	p.Run(context.Background(), comp, []string{"a.js"})
	first := asset.Content

	p.Run(context.Background(), comp, []string{"a.js"})

	assert.Equal(t, first, asset.Content, "second pass yields byte-identical output")
	assert.Equal(t, 1, engine.calls, "no second engine invocation for a processed asset")
}

func TestRun_DuplicateCandidates(t *testing.T) {
	engine := &stubEngine{}
	p := newTestPipeline(t, DefaultOptions(), engine)

	comp := compilationWith(&domain.Asset{Name: "a.js", Content: "var x = 1;"})
	p.Run(context.Background(), comp, []string{"a.js", "a.js"})

	assert.Equal(t, 1, engine.calls)
}

func TestRun_FailureIsolation(t *testing.T) {
	engine := &stubEngine{failOn: map[string]error{
		"bad.js": &domain.MinifyError{Message: "unexpected token", Line: 1, Column: 8, HasPosition: true},
	}}
	p := newTestPipeline(t, DefaultOptions(), engine)

	bad := &domain.Asset{Name: "bad.js", Content: "var x = ;"}
	good := &domain.Asset{Name: "good.js", Content: "var y = 2;"}
	comp := compilationWith(bad, good)

	p.Run(context.Background(), comp, []string{"bad.js", "good.js"})

	require.Len(t, comp.Errors, 1)
	assert.Contains(t, comp.Errors[0].Error(), "bad.js from stub")
	assert.Equal(t, "var x = ;", bad.Content, "failed file keeps its original content")
	assert.Equal(t, "min:var y = 2;", good.Content, "failure does not halt the batch")
}

func TestRun_SidecarAccumulation(t *testing.T) {
	engine := &stubEngine{}
	opts := DefaultOptions()
	opts.Extract = &ExtractOptions{
		Condition:     predicate.String("@license"),
		Filename:      "THIRD-PARTY.LICENSE",
		DisableBanner: true,
	}
	p := newTestPipeline(t, opts, engine)

	a := &domain.Asset{Name: "a.js", Content: "//@license A\nvar a = 1;"}
	b := &domain.Asset{Name: "b.js", Content: "//@license B\nvar b = 2;"}
	comp := compilationWith(a, b)

	p.Run(context.Background(), comp, []string{"a.js", "b.js"})

	sidecar := comp.Asset("THIRD-PARTY.LICENSE")
	require.NotNil(t, sidecar, "both files share one sidecar asset")
	assert.Equal(t, "//@license A\n\n//@license B\n", sidecar.Content,
		"ordered concatenation separated by a blank line")
	assert.Empty(t, comp.Errors)
}

func TestRun_SidecarNotReprocessed(t *testing.T) {
	engine := &stubEngine{}
	opts := DefaultOptions()
	opts.Test = predicate.Bool(true) // select everything, sidecar included
	opts.Extract = &ExtractOptions{Condition: predicate.String("@license")}
	p := newTestPipeline(t, opts, engine)

	asset := &domain.Asset{Name: "a.js", Content: "//@license MIT\nvar a = 1;"}
	comp := compilationWith(asset)

	p.Run(context.Background(), comp, []string{"a.js"})
	require.NotNil(t, comp.Asset("a.js.LICENSE"))
	before := comp.Asset("a.js.LICENSE").Content

	// A second pass sees the sidecar among the candidates.
	p.Run(context.Background(), comp, comp.AssetNames())

	assert.Equal(t, before, comp.Asset("a.js.LICENSE").Content,
		"assets produced by the pipeline are never candidates")
	assert.Equal(t, 1, engine.calls)
}

func TestRun_Banner(t *testing.T) {
	engine := &stubEngine{}
	opts := DefaultOptions()
	opts.Extract = &ExtractOptions{Condition: predicate.String("@license")}
	p := newTestPipeline(t, opts, engine)

	asset := &domain.Asset{Name: "a.js", Content: "//@license MIT\nvar a = 1;"}
	comp := compilationWith(asset)

	p.Run(context.Background(), comp, []string{"a.js"})

	assert.True(t, strings.HasPrefix(asset.Content,
		"/*! For license information please see a.js.LICENSE */\n"))
}

func TestRun_NoExtractionNoSidecar(t *testing.T) {
	engine := &stubEngine{}
	opts := DefaultOptions()
	opts.Extract = &ExtractOptions{Condition: predicate.String("@license")}
	p := newTestPipeline(t, opts, engine)

	asset := &domain.Asset{Name: "a.js", Content: "// plain\nvar a = 1;"}
	comp := compilationWith(asset)

	p.Run(context.Background(), comp, []string{"a.js"})

	assert.Nil(t, comp.Asset("a.js.LICENSE"), "no sidecar when nothing was extracted")
	assert.NotContains(t, asset.Content, "/*!", "no banner when nothing was extracted")
}

func TestRun_WarningFilter(t *testing.T) {
	t.Run("accept all", func(t *testing.T) {
		engine := &stubEngine{warnings: []string{"duplicate var", "unused import"}}
		p := newTestPipeline(t, DefaultOptions(), engine)

		comp := compilationWith(&domain.Asset{Name: "a.js", Content: "var x = 1;"})
		p.Run(context.Background(), comp, []string{"a.js"})

		require.Len(t, comp.Warnings, 1, "one aggregate warning per file")
		assert.Contains(t, comp.Warnings[0].Error(), "a.js from stub")
		assert.Contains(t, comp.Warnings[0].Error(), "duplicate var")
		assert.Contains(t, comp.Warnings[0].Error(), "unused import")
	})

	t.Run("filtered out", func(t *testing.T) {
		engine := &stubEngine{warnings: []string{"duplicate var"}}
		opts := DefaultOptions()
		opts.WarningFilter = predicate.String("unreachable")
		p := newTestPipeline(t, opts, engine)

		comp := compilationWith(&domain.Asset{Name: "a.js", Content: "var x = 1;"})
		p.Run(context.Background(), comp, []string{"a.js"})

		assert.Empty(t, comp.Warnings)
	})
}

func TestRun_CancelledContext(t *testing.T) {
	engine := &stubEngine{}
	p := newTestPipeline(t, DefaultOptions(), engine)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	comp := compilationWith(&domain.Asset{Name: "a.js", Content: "var x = 1;"})
	p.Run(ctx, comp, []string{"a.js"})

	assert.Equal(t, 0, engine.calls)
}

func TestRun_MissingAsset(t *testing.T) {
	engine := &stubEngine{}
	p := newTestPipeline(t, DefaultOptions(), engine)

	comp := domain.NewCompilation()
	p.Run(context.Background(), comp, []string{"ghost.js"})

	assert.Equal(t, 0, engine.calls)
	assert.Empty(t, comp.Errors)
}
