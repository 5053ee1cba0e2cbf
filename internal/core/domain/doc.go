// Package domain defines the core business entities for mince.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Asset: a named build output artifact (content + optional source map)
//   - Compilation: the shared per-run result object (assets, errors, warnings)
//   - Comment: a source comment encountered during minification
//   - MinifyError: a structured minification engine failure
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
