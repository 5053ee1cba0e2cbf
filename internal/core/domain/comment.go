package domain

import "strings"

// CommentKind distinguishes the two comment delimiter styles.
type CommentKind int

// Comment delimiter styles.
const (
	// CommentLine is a // comment running to the end of its line.
	CommentLine CommentKind = iota

	// CommentBlock is a /* ... */ comment.
	CommentBlock
)

// Comment is a source comment encountered during minification.
// Classification predicates are evaluated against Value; the sidecar
// stores Text so the original delimiter style survives extraction.
type Comment struct {
	// Value is the comment text without delimiters.
	Value string

	// Kind records the delimiter style.
	Kind CommentKind

	// Line and Column locate the comment start in the pre-minified
	// source (1-based line, 0-based column).
	Line   int
	Column int
}

// Text returns the comment formatted with its original delimiters.
func (c Comment) Text() string {
	if c.Kind == CommentLine {
		return "//" + c.Value
	}
	return "/*" + c.Value + "*/"
}

// IsAnnotation reports whether the comment is a preservation annotation:
// its text starts with "!" or mentions @preserve or @license. This is the
// default preserve rule.
func (c Comment) IsAnnotation() bool {
	trimmed := strings.TrimLeft(c.Value, "*")
	if strings.HasPrefix(trimmed, "!") {
		return true
	}
	return strings.Contains(c.Value, "@preserve") || strings.Contains(c.Value, "@license")
}
