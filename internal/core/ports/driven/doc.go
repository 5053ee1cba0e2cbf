// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// The pipeline depends on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Minifier: the external minification engine. The pipeline treats it
//     as a black box: source text in, transformed text plus diagnostics out.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or engine package
package driven
