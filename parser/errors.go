package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why a line could not be run.
type ErrorKind int

const (
	// NoMatches: the token matched nothing in the frontier, or a named
	// parameter had no value token after it.
	NoMatches ErrorKind = iota + 1
	// AmbiguousMatch: several nodes tied at the highest priority.
	AmbiguousMatch
	// MissingRequired: parsing succeeded but required parameters were
	// never bound.
	MissingRequired
)

func (k ErrorKind) String() string {
	switch k {
	case NoMatches:
		return "no matches"
	case AmbiguousMatch:
		return "ambiguous match"
	case MissingRequired:
		return "missing required"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrNoMatches       = errors.New("no matches")
	ErrAmbiguousMatch  = errors.New("ambiguous match")
	ErrMissingRequired = errors.New("missing required parameters")
)

// Error is returned by Parse and Verify.
type Error struct {
	Kind ErrorKind

	// Token is the token being matched when parsing stopped. It is empty
	// when a named parameter was not followed by a value.
	Token string

	// Nodes holds the acceptable options for NoMatches (visible nodes
	// only, in listing order) or the tied nodes for AmbiguousMatch (hidden
	// nodes included; see VisibleNodes).
	Nodes []Node

	// Missing holds the names of unbound required parameters, in
	// declaration order.
	Missing []string
}

func (e *Error) Error() string {
	switch e.Kind {
	case NoMatches:
		if e.Token == "" {
			return "no matches: missing value"
		}
		return fmt.Sprintf("no matches for %q", e.Token)
	case AmbiguousMatch:
		return fmt.Sprintf("ambiguous match for %q", e.Token)
	case MissingRequired:
		return "missing required parameters: " + strings.Join(e.Missing, ", ")
	default:
		return "parse error"
	}
}

// Is lets errors.Is compare against the package sentinels.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case NoMatches:
		return target == ErrNoMatches
	case AmbiguousMatch:
		return target == ErrAmbiguousMatch
	case MissingRequired:
		return target == ErrMissingRequired
	}
	return false
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
