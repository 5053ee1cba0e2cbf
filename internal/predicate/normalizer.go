// Package predicate normalises heterogeneous selection and classification
// specs into plain boolean-valued functions.
//
// Configuration accepts a predicate in five shapes: a boolean constant,
// a function, the literal string "all", any other string (compiled as a
// regular expression), or a prebuilt regular expression. Normalisation
// collapses all of them into a single callable once, at configuration
// time, so nothing downstream ever branches on the raw shape again.
package predicate

import (
	"fmt"
	"regexp"

	"github.com/mincehq/mince/internal/core/domain"
)

// Func is a normalised predicate over a subject string (a file name for
// selection specs, the comment text for classification specs).
type Func func(subject string) bool

// specKind tags the accepted shapes.
type specKind int

const (
	kindUnset specKind = iota
	kindBool
	kindString
	kindRegexp
	kindFunc
)

// Spec is a predicate in one of the accepted configuration shapes.
// The zero Spec is invalid; build one with Bool, String, Regexp or Fn.
type Spec struct {
	kind specKind
	b    bool
	s    string
	re   *regexp.Regexp
	fn   Func
}

// Bool builds a constant predicate spec.
func Bool(v bool) Spec {
	return Spec{kind: kindBool, b: v}
}

// String builds a spec from a pattern string. The literal "all" matches
// everything; any other string is compiled as a regular expression at
// normalisation time.
func String(pattern string) Spec {
	return Spec{kind: kindString, s: pattern}
}

// Regexp builds a spec from a prebuilt regular expression.
func Regexp(re *regexp.Regexp) Spec {
	return Spec{kind: kindRegexp, re: re}
}

// Fn builds a spec from an arbitrary predicate function.
func Fn(fn Func) Spec {
	return Spec{kind: kindFunc, fn: fn}
}

// IsZero reports whether the spec was never set.
func (s Spec) IsZero() bool {
	return s.kind == kindUnset
}

// Normalize converts a spec into a callable predicate.
// It is pure and deterministic; all validation happens here, so a
// successfully normalised predicate never fails at evaluation time.
func Normalize(spec Spec) (Func, error) {
	switch spec.kind {
	case kindBool:
		v := spec.b
		return func(string) bool { return v }, nil
	case kindFunc:
		if spec.fn == nil {
			return nil, fmt.Errorf("%w: nil function", domain.ErrInvalidPredicate)
		}
		return spec.fn, nil
	case kindString:
		if spec.s == "all" {
			return func(string) bool { return true }, nil
		}
		re, err := regexp.Compile(spec.s)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", domain.ErrInvalidPredicate, spec.s, err)
		}
		return re.MatchString, nil
	case kindRegexp:
		if spec.re == nil {
			return nil, fmt.Errorf("%w: nil regexp", domain.ErrInvalidPredicate)
		}
		return spec.re.MatchString, nil
	default:
		return nil, fmt.Errorf("%w: spec is unset", domain.ErrInvalidPredicate)
	}
}
