// Package pipeline drives post-build asset minification.
//
// For every compilation asset matching the selection predicate, the
// pipeline resolves the best-available source text and map, invokes the
// configured engine with a per-file comment classifier, installs the
// transformed output, aggregates extracted comments into sidecar assets,
// and translates engine failures back through the source map into the
// compilation's error collection.
//
// Processing is strictly sequential: one file's minification,
// classification and sidecar write complete before the next file begins,
// so files sharing a sidecar name accumulate in deterministic order.
// A failure on one file never halts the batch.
package pipeline
