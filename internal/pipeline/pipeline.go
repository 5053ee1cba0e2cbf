package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mincehq/mince/internal/comments"
	"github.com/mincehq/mince/internal/core/domain"
	"github.com/mincehq/mince/internal/core/ports/driven"
	"github.com/mincehq/mince/internal/predicate"
	"github.com/mincehq/mince/internal/sourcemaps"
)

// Pipeline minifies matching compilation assets through the configured
// engine. One instance serves one compilation run but survives multiple
// optimisation passes over it: the asset cache and sidecar state persist
// so repeated passes are no-ops for already-processed files.
type Pipeline struct {
	opts     Options
	test     predicate.Func
	warnings predicate.Func
	minifier driven.Minifier
	bridge   *sourcemaps.Bridge
	cache    *assetCache
	sidecars *sidecarAggregator
	log      zerolog.Logger

	// produced tracks additional assets (sidecars) created by this
	// instance so later passes never treat them as candidates.
	produced map[string]struct{}
}

// New resolves and validates the configuration once. All predicate specs
// are normalised here; a malformed spec is fatal to the whole run and
// surfaces before any file is touched.
func New(opts Options, minifier driven.Minifier, log zerolog.Logger) (*Pipeline, error) {
	if minifier == nil {
		return nil, domain.ErrNoMinifier
	}

	test, err := predicate.Normalize(opts.Test)
	if err != nil {
		return nil, fmt.Errorf("%w: test: %v", domain.ErrInvalidConfig, err)
	}
	warnings, err := predicate.Normalize(opts.WarningFilter)
	if err != nil {
		return nil, fmt.Errorf("%w: warning filter: %v", domain.ErrInvalidConfig, err)
	}

	// Dry-run the classifier so comment and extraction specs fail at
	// configuration time, not mid-batch.
	if _, err := comments.NewClassifier(opts.Comments, extractSpec(opts.Extract)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	return &Pipeline{
		opts:     opts,
		test:     test,
		warnings: warnings,
		minifier: minifier,
		bridge:   sourcemaps.NewBridge(opts.SourceMap),
		cache:    newAssetCache(),
		sidecars: newSidecarAggregator(),
		log:      log,
		produced: make(map[string]struct{}),
	}, nil
}

// Run processes candidate files against the compilation, sequentially and
// in the given order. Per-file failures are recorded on the compilation;
// Run itself never fails.
func (p *Pipeline) Run(ctx context.Context, comp *domain.Compilation, candidates []string) {
	type fileWarnings struct {
		name     string
		warnings []string
	}
	var collected []fileWarnings

	seen := make(map[string]struct{}, len(candidates))
	for _, name := range candidates {
		if ctx.Err() != nil {
			p.log.Debug().Str("file", name).Msg("run cancelled")
			return
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if _, ours := p.produced[name]; ours {
			continue
		}
		if !p.test(name) {
			p.log.Debug().Str("file", name).Msg("skipped by selection predicate")
			continue
		}

		warnings := p.processFile(ctx, comp, name)
		if len(warnings) > 0 {
			collected = append(collected, fileWarnings{name: name, warnings: warnings})
		}
	}

	for _, fw := range collected {
		passing := make([]string, 0, len(fw.warnings))
		for _, w := range fw.warnings {
			if p.warnings(w) {
				passing = append(passing, w)
			}
		}
		if len(passing) > 0 {
			comp.AddWarning(fmt.Errorf("%s from %s\n%s",
				fw.name, p.minifier.Name(), strings.Join(passing, "\n")))
		}
	}
}

// processFile drives one asset through the full transformation and returns
// the engine warnings it produced. On failure the asset is left untouched
// and the translated error is recorded.
func (p *Pipeline) processFile(ctx context.Context, comp *domain.Compilation, name string) []string {
	asset := comp.Asset(name)
	if asset == nil {
		return nil
	}

	if prior := p.cache.get(name); prior != nil {
		asset.Content = prior.code
		if prior.sourceMap != nil {
			asset.SourceMap = prior.sourceMap
		}
		p.log.Debug().Str("file", name).Msg("reusing cached result")
		return nil
	}

	text, lookup := p.bridge.Resolve(comp, asset)

	classifier, err := comments.NewClassifier(p.opts.Comments, extractSpec(p.opts.Extract))
	if err != nil {
		// Validated in New; reaching here means the options mutated underneath us.
		comp.AddError(fmt.Errorf("%s: %w", name, err))
		return nil
	}

	result, err := p.minifier.Minify(ctx, name, text, driven.MinifyOptions{
		Mangle:    p.opts.Mangle,
		TopLevel:  p.opts.TopLevel,
		SourceMap: p.opts.SourceMap,
		Comments:  classifier.Visit,
		ECMA:      p.opts.ECMA,
	})
	if err != nil {
		comp.AddError(translateError(name, p.minifier.Name(), err, lookup))
		p.log.Debug().Str("file", name).Err(err).Msg("minification failed")
		return nil
	}

	asset.Content = result.Code

	if extracted := classifier.Extracted(); len(extracted) > 0 && p.opts.Extract != nil {
		sidecar := sidecarName(p.opts.Extract, name)
		p.sidecars.Write(comp, sidecar, extracted)
		p.produced[sidecar] = struct{}{}
		asset.Content = applyBanner(bannerText(p.opts.Extract, sidecar), asset.Content)
		p.log.Debug().Str("file", name).Str("sidecar", sidecar).
			Int("comments", len(extracted)).Msg("extracted comments")
	}

	if p.opts.SourceMap && len(result.SourceMap) > 0 {
		asset.SourceMap = result.SourceMap
	}

	p.cache.put(name, &transformResult{code: asset.Content, sourceMap: asset.SourceMap})
	p.log.Debug().Str("file", name).Int("bytes", len(asset.Content)).Msg("minified")

	return result.Warnings
}

// Processed reports whether the pipeline has transformed the named asset.
func (p *Pipeline) Processed(name string) bool {
	return p.cache.has(name)
}

// extractSpec adapts pipeline extraction options to the classifier's shape.
func extractSpec(opts *ExtractOptions) *comments.ExtractSpec {
	if opts == nil {
		return nil
	}
	return &comments.ExtractSpec{Condition: opts.Condition}
}
