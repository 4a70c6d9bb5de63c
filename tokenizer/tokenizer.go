// Package tokenizer splits a raw command line into tokens.
//
// Tokens are separated by unquoted whitespace. Double and single quotes
// group text (including whitespace) into one token and are removed; quoted
// and unquoted text that touch form a single token. A backslash outside
// single quotes takes the next rune literally.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrUnterminatedQuote = errors.New("unterminated quote")
	ErrTrailingEscape    = errors.New("trailing escape")
)

// Error reports where in the line tokenizing failed.
type Error struct {
	// Offset is the byte offset of the opening quote or the backslash.
	Offset int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *Error) Unwrap() error { return e.Err }

// Token is a token and the byte range of the line it was read from.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize returns the tokens of line. Blank lines yield no tokens.
func Tokenize(line string) ([]string, error) {
	toks, err := Scan(line)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out, nil
}

// Scan is Tokenize with source positions.
func Scan(line string) ([]Token, error) {
	var (
		tokens  []Token
		current strings.Builder
		inToken bool
		start   int
		quote   rune
		quoteAt int
		escaped bool
		escAt   int
	)

	flush := func(end int) {
		if inToken {
			tokens = append(tokens, Token{Text: current.String(), Start: start, End: end})
		}
		current.Reset()
		inToken = false
	}

	for i, r := range line {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}

		switch {
		case quote != 0:
			switch {
			case r == quote:
				quote = 0
			case r == '\\' && quote == '"':
				escaped = true
				escAt = i
			default:
				current.WriteRune(r)
			}

		case r == '\\':
			if !inToken {
				inToken = true
				start = i
			}
			escaped = true
			escAt = i

		case r == '"' || r == '\'':
			if !inToken {
				inToken = true
				start = i
			}
			quote = r
			quoteAt = i

		case unicode.IsSpace(r):
			flush(i)

		default:
			if !inToken {
				inToken = true
				start = i
			}
			current.WriteRune(r)
		}
	}

	if escaped {
		return nil, &Error{Offset: escAt, Err: ErrTrailingEscape}
	}
	if quote != 0 {
		return nil, &Error{Offset: quoteAt, Err: ErrUnterminatedQuote}
	}
	flush(len(line))

	return tokens, nil
}

// SplitPartial separates a line being typed into its complete tokens and
// the word under the cursor. The word is empty when the line ends in
// whitespace.
func SplitPartial(line string) ([]string, string, error) {
	toks, err := Scan(line)
	if err != nil {
		return nil, "", err
	}
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	if len(toks) == 0 || toks[len(toks)-1].End < len(line) {
		return out, "", nil
	}
	return out[:len(out)-1], out[len(out)-1], nil
}
