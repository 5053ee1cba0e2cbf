package domain

import "sort"

// Asset represents a named build output artifact.
// It is owned by the compilation; the pipeline rewrites Content in place.
type Asset struct {
	// Name is the output file path, relative to the build output root.
	Name string

	// Content is the current textual content of the asset.
	Content string

	// SourceMap is the raw source-map JSON for Content, if one exists.
	// A nil SourceMap means no provenance information is available.
	SourceMap []byte
}

// Compilation is the shared result object for one optimisation pass.
// Assets are read and written per file, never concurrently; the error
// and warning collections are append-only with a single writer.
type Compilation struct {
	// Assets maps asset names to their current state.
	Assets map[string]*Asset

	// Errors collects per-file failures. A non-empty slice means the
	// pass produced broken output for at least one file.
	Errors []error

	// Warnings collects non-fatal diagnostics. They never block processing.
	Warnings []error
}

// NewCompilation creates an empty compilation.
func NewCompilation() *Compilation {
	return &Compilation{
		Assets: make(map[string]*Asset),
	}
}

// AddAsset installs an asset, replacing any previous asset with the same name.
func (c *Compilation) AddAsset(a *Asset) {
	c.Assets[a.Name] = a
}

// Asset returns the asset with the given name, or nil.
func (c *Compilation) Asset(name string) *Asset {
	return c.Assets[name]
}

// AssetNames returns all asset names in deterministic (sorted) order.
func (c *Compilation) AssetNames() []string {
	names := make([]string, 0, len(c.Assets))
	for name := range c.Assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddError appends a failure to the error collection.
func (c *Compilation) AddError(err error) {
	c.Errors = append(c.Errors, err)
}

// AddWarning appends a non-fatal diagnostic to the warning collection.
func (c *Compilation) AddWarning(err error) {
	c.Warnings = append(c.Warnings, err)
}
