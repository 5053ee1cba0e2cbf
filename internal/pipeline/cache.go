package pipeline

// transformResult is one file's completed transformation, held so a second
// pass over the same asset reuses it verbatim.
type transformResult struct {
	code      string
	sourceMap []byte
}

// assetCache guarantees at-most-once minification per asset name per
// pipeline instance. It is an explicit keyed cache owned by the pipeline;
// nothing is attached to the compilation's asset objects.
type assetCache struct {
	results map[string]*transformResult
}

func newAssetCache() *assetCache {
	return &assetCache{results: make(map[string]*transformResult)}
}

// get returns the prior result for name, or nil.
func (c *assetCache) get(name string) *transformResult {
	return c.results[name]
}

// put records a completed transformation for name.
func (c *assetCache) put(name string, result *transformResult) {
	c.results[name] = result
}

// has reports whether name has been transformed by this pipeline instance.
func (c *assetCache) has(name string) bool {
	_, ok := c.results[name]
	return ok
}
