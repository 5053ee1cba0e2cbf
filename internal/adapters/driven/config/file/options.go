// Package file loads pipeline configuration from a TOML file.
package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/mincehq/mince/internal/core/domain"
	"github.com/mincehq/mince/internal/pipeline"
	"github.com/mincehq/mince/internal/predicate"
)

// fileOptions mirrors the TOML surface. Pointer and any-typed fields
// distinguish "absent" from zero so defaults merge exactly once.
type fileOptions struct {
	Test          *string         `toml:"test"`
	WarningFilter *string         `toml:"warning_filter"`
	SourceMap     *bool           `toml:"source_map"`
	Mangle        *bool           `toml:"mangle"`
	TopLevel      *bool           `toml:"toplevel"`
	Comments      any             `toml:"comments"`
	ECMA          *int            `toml:"ecma"`
	Extract       *extractOptions `toml:"extract"`
}

type extractOptions struct {
	Condition any    `toml:"condition"`
	Filename  string `toml:"filename"`
	Banner    any    `toml:"banner"`
}

// Load reads a TOML configuration file and merges it over the pipeline
// defaults. A missing path (empty string) yields the defaults unchanged.
func Load(path string) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read config: %w", err)
	}

	var raw fileOptions
	if err := toml.Unmarshal(data, &raw); err != nil {
		return opts, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	return merge(opts, raw)
}

func merge(opts pipeline.Options, raw fileOptions) (pipeline.Options, error) {
	if raw.Test != nil {
		opts.Test = predicate.String(*raw.Test)
	}
	if raw.WarningFilter != nil {
		opts.WarningFilter = predicate.String(*raw.WarningFilter)
	}
	if raw.SourceMap != nil {
		opts.SourceMap = *raw.SourceMap
	}
	if raw.Mangle != nil {
		opts.Mangle = *raw.Mangle
	}
	if raw.TopLevel != nil {
		opts.TopLevel = *raw.TopLevel
	}
	if raw.ECMA != nil {
		opts.ECMA = *raw.ECMA
	}

	if raw.Comments != nil {
		spec, err := specFromValue(raw.Comments)
		if err != nil {
			return opts, fmt.Errorf("comments: %w", err)
		}
		opts.Comments = spec
	}

	if raw.Extract != nil {
		extract := &pipeline.ExtractOptions{Filename: raw.Extract.Filename}

		if raw.Extract.Condition != nil {
			spec, err := specFromValue(raw.Extract.Condition)
			if err != nil {
				return opts, fmt.Errorf("extract.condition: %w", err)
			}
			extract.Condition = spec
		}

		switch banner := raw.Extract.Banner.(type) {
		case nil:
			// default banner
		case bool:
			if banner {
				return opts, fmt.Errorf("%w: extract.banner accepts text or false", domain.ErrInvalidConfig)
			}
			extract.DisableBanner = true
		case string:
			extract.Banner = banner
		default:
			return opts, fmt.Errorf("%w: extract.banner accepts text or false", domain.ErrInvalidConfig)
		}

		opts.Extract = extract
	}

	return opts, nil
}

// specFromValue converts a decoded TOML value (boolean or pattern string)
// into a predicate spec.
func specFromValue(v any) (predicate.Spec, error) {
	switch value := v.(type) {
	case bool:
		return predicate.Bool(value), nil
	case string:
		return predicate.String(value), nil
	default:
		return predicate.Spec{}, fmt.Errorf("%w: expected boolean or string, got %T", domain.ErrInvalidPredicate, v)
	}
}
