package osutils

import (
	"strings"
	"unicode"

	"github.com/taskrig/taskkit/internal/failures"
)

// FailArgParse identifies a failure due to a malformed argument string
var FailArgParse = failures.Type("osutils.fail.argparse", failures.FailInput)

// SplitArgs splits a raw argument string into ordered tokens. Tokens are separated by runs of
// whitespace, a double-quoted span is part of a single token with the quotes stripped and interior
// whitespace kept verbatim. A quote may start mid-token, so `foo="bar baz"` is the single
// token `foo=bar baz`. `=` and `-` carry no special meaning.
func SplitArgs(line string) ([]string, *failures.Failure) {
	args := []string{}
	var current strings.Builder
	inQuote := false
	inToken := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			inToken = true
		case unicode.IsSpace(r) && !inQuote:
			if inToken {
				args = append(args, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if inQuote {
		// Guessing at what the caller meant would misparse silently, so fail loudly instead
		return nil, FailArgParse.New("err_arg_unterminated_quote", line)
	}

	if inToken {
		args = append(args, current.String())
	}

	return args, nil
}
