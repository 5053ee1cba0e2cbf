package pipeline

import (
	"errors"
	"fmt"

	"github.com/mincehq/mince/internal/core/domain"
	"github.com/mincehq/mince/internal/sourcemaps"
)

// translateError converts an engine failure into the compilation error for
// one file, mapping a known generated position back through the source map
// when a mapping exists. The result is recorded, never thrown; a single
// file's failure does not abort the batch.
func translateError(file, engine string, failure error, lookup *sourcemaps.Lookup) error {
	head := fmt.Sprintf("%s from %s", file, engine)

	var minErr *domain.MinifyError
	if !errors.As(failure, &minErr) {
		// Unknown failure shape: preserve its text verbatim.
		return fmt.Errorf("%s\n%v", head, failure)
	}

	switch {
	case minErr.HasPosition:
		if pos, ok := lookup.OriginalPositionFor(minErr.Line, minErr.Column); ok {
			return fmt.Errorf("%s\n%s [%s:%d,%d][%s:%d,%d]",
				head, minErr.Message,
				pos.Source, pos.Line, pos.Column,
				file, minErr.Line, minErr.Column)
		}
		return fmt.Errorf("%s\n%s [%s:%d,%d]",
			head, minErr.Message, file, minErr.Line, minErr.Column)
	case minErr.Message != "":
		return fmt.Errorf("%s\n%s", head, minErr.Message)
	default:
		return fmt.Errorf("%s\n%s", head, minErr.Detail)
	}
}
