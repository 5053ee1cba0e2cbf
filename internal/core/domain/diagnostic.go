package domain

import "fmt"

// Position is a location in an original source file, recovered from a
// source map. Line is 1-based, Column is 0-based.
type Position struct {
	Source string
	Line   int
	Column int
}

// MinifyError is a structured failure reported by a minification engine.
// HasPosition distinguishes a parse failure at a known generated position
// from an internal failure carrying only a message. Detail holds the
// engine's full diagnostic text when neither is available.
type MinifyError struct {
	Message     string
	Line        int
	Column      int
	HasPosition bool
	Detail      string
}

// Error implements the error interface.
func (e *MinifyError) Error() string {
	if e.HasPosition {
		return fmt.Sprintf("%s [%d,%d]", e.Message, e.Line, e.Column)
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Detail
}
