package usage

import (
	"errors"

	"github.com/footprint-tools/commands/parser"
	"github.com/footprint-tools/commands/tokenizer"
)

// FromParse converts an error from the tokenize, parse, verify and
// execute pipeline into a usage error. Errors that are already usage
// errors pass through; nil stays nil.
func FromParse(err error) *Error {
	if err == nil {
		return nil
	}

	var uerr *Error
	if errors.As(err, &uerr) {
		return uerr
	}

	var tokErr *tokenizer.Error
	if errors.As(err, &tokErr) {
		return InvalidInput(err)
	}

	var perr *parser.Error
	if !errors.As(err, &perr) {
		return CommandFailed(err)
	}

	var out *Error
	switch perr.Kind {
	case parser.NoMatches:
		if perr.Token == "" {
			var names []string
			for _, n := range perr.Nodes {
				names = append(names, n.Name())
			}
			out = MissingArgument(names...)
			break
		}
		out = UnknownCommand(perr.Token)
	case parser.AmbiguousMatch:
		var names []string
		for _, n := range parser.SortNodes(parser.VisibleNodes(perr.Nodes)) {
			names = append(names, n.Name())
		}
		out = AmbiguousCommand(perr.Token, names)
	case parser.MissingRequired:
		out = MissingArgument(perr.Missing...)
	default:
		out = CommandFailed(err)
	}
	out.Err = err
	return out
}
