// Package comments classifies source comments during minification.
//
// A Scanner tokenises JavaScript and yields every comment in source order;
// a Classifier decides, per comment, whether it survives inline in the
// transformed output and whether it is collected for a sidecar file.
package comments

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"github.com/mincehq/mince/internal/core/domain"
)

// Scan tokenises source and returns its comments in source order.
// Tokenising (rather than pattern matching) keeps comment-like text inside
// string, template and regexp literals out of the result. Scanning is best
// effort: on a lexing error the comments found so far are returned, since
// the engine will report the underlying syntax failure itself.
func Scan(source string) []domain.Comment {
	lexer := js.NewLexer(parse.NewInputString(source))

	var found []domain.Comment
	line := 1
	column := 0
	prev := js.ErrorToken

	for {
		tt, text := lexer.Next()
		if tt == js.ErrorToken {
			return found
		}

		// The lexer alone cannot distinguish division from a regexp
		// literal; re-lex when the previous significant token leaves
		// the slash in expression position.
		if (tt == js.DivToken || tt == js.DivEqToken) && regexpAllowed(prev) {
			if rt, rtext := lexer.RegExp(); rt == js.RegExpToken {
				tt, text = rt, rtext
			} else {
				return found
			}
		}

		switch tt {
		case js.CommentToken, js.CommentLineTerminatorToken:
			found = append(found, newComment(string(text), line, column))
		case js.WhitespaceToken, js.LineTerminatorToken:
			// insignificant for regexp disambiguation
		default:
			prev = tt
		}

		line, column = advance(line, column, text)
	}
}

// regexpAllowed reports whether a slash after the previous significant
// token starts a regexp literal rather than a division operator.
func regexpAllowed(prev js.TokenType) bool {
	if js.IsNumeric(prev) {
		return false
	}
	switch prev {
	case js.IdentifierToken, js.StringToken, js.RegExpToken,
		js.TemplateToken, js.TemplateEndToken,
		js.CloseParenToken, js.CloseBracketToken, js.CloseBraceToken,
		js.ThisToken, js.TrueToken, js.FalseToken, js.NullToken:
		return false
	default:
		return true
	}
}

// newComment strips the delimiters off a raw comment token.
func newComment(text string, line, column int) domain.Comment {
	c := domain.Comment{Line: line, Column: column}

	if strings.HasPrefix(text, "//") {
		c.Kind = domain.CommentLine
		c.Value = text[2:]
		return c
	}

	c.Kind = domain.CommentBlock
	c.Value = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	return c
}

// advance moves a (line, column) cursor across token text.
func advance(line, column int, text []byte) (int, int) {
	for _, b := range text {
		if b == '\n' {
			line++
			column = 0
		} else {
			column++
		}
	}
	return line, column
}
