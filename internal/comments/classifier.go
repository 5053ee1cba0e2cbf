package comments

import (
	"fmt"

	"github.com/mincehq/mince/internal/core/domain"
	"github.com/mincehq/mince/internal/predicate"
)

// ExtractSpec is the extraction side of the classification configuration.
// A nil *ExtractSpec disables extraction entirely. An enabled spec with a
// zero Condition extracts whatever the preserve spec would have kept.
type ExtractSpec struct {
	// Condition decides which comments are extracted.
	Condition predicate.Spec
}

// Classifier pairs the two classification predicates for one file and
// collects extracted comments in traversal order.
type Classifier struct {
	preserve  predicate.Func
	extract   predicate.Func
	extracted []string
}

// NewClassifier resolves the {preserve, extract} predicate pair from the
// configured comment spec and extraction spec, then normalises both.
//
// Resolution order:
//  1. extraction disabled: preserve = commentSpec, extract = never.
//  2. extraction with a condition: preserve = commentSpec, extract = condition.
//  3. extraction without a condition: preserve = never, extract = commentSpec
//     (everything that would have been kept inline moves to the sidecar).
func NewClassifier(commentSpec predicate.Spec, extractSpec *ExtractSpec) (*Classifier, error) {
	preserveSpec := commentSpec
	extractCond := predicate.Bool(false)

	switch {
	case extractSpec == nil:
		// extraction disabled
	case !extractSpec.Condition.IsZero():
		extractCond = extractSpec.Condition
	default:
		preserveSpec = predicate.Bool(false)
		extractCond = commentSpec
	}

	preserve, err := predicate.Normalize(preserveSpec)
	if err != nil {
		return nil, fmt.Errorf("comments spec: %w", err)
	}
	extract, err := predicate.Normalize(extractCond)
	if err != nil {
		return nil, fmt.Errorf("extract condition: %w", err)
	}

	return &Classifier{preserve: preserve, extract: extract}, nil
}

// Visit is the comment visitor handed to the engine. It is called once per
// comment in source order: extraction is evaluated first and appends the
// formatted comment to the sink; the return value is the preserve decision.
// Visit never reorders or deduplicates.
func (c *Classifier) Visit(comment domain.Comment) bool {
	if c.extract(comment.Value) {
		c.extracted = append(c.extracted, comment.Text())
	}
	return c.preserve(comment.Value)
}

// Extracted returns the comments collected so far, in traversal order.
func (c *Classifier) Extracted() []string {
	return c.extracted
}
