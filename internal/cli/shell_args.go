package cli

import (
	"errors"
	"strings"
)

var (
	errUnterminatedQuote  = errors.New("unterminated quoted string")
	errUnterminatedEscape = errors.New("unterminated escape sequence")
)

// splitShellArgs splits a command-bar line into arguments. Single quotes
// are literal, double quotes allow backslash escapes, and an empty quoted
// string is kept as an empty argument.
func splitShellArgs(input string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		escaped bool
		started bool
	)

	for _, r := range input {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case quote == '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			started = true
		case r == '\'' || r == '"':
			quote = r
			started = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}

	if escaped {
		return nil, errUnterminatedEscape
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if started {
		args = append(args, cur.String())
	}
	return args, nil
}
