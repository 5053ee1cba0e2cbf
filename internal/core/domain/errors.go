package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidPredicate indicates a predicate spec in a shape the
	// normaliser does not accept (nil, or an unsupported type/pattern).
	ErrInvalidPredicate = errors.New("invalid predicate spec")

	// ErrInvalidConfig indicates malformed pipeline configuration.
	// Configuration failures are fatal to the whole run.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoMinifier indicates the pipeline was constructed without an engine.
	ErrNoMinifier = errors.New("no minification engine configured")
)
