package history

import (
	"fmt"
	"strconv"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/parser"
)

// Clear trims the history to the newest --keep entries, or removes all of
// it when --keep is absent.
func Clear(app *domain.Application) parser.Handler {
	deps := DefaultDeps(app)
	return func(inv parser.Invocation) error {
		return clearHistory(inv, deps)
	}
}

func clearHistory(inv parser.Invocation, deps Deps) error {
	if deps.Store == nil {
		return ErrDisabled
	}

	var (
		removed int64
		err     error
	)
	if raw, ok := inv.Values.Get("--keep"); ok {
		keep, convErr := strconv.Atoi(raw)
		if convErr != nil || keep <= 0 {
			return fmt.Errorf("invalid --keep %q: expected a positive integer", raw)
		}
		removed, err = deps.Store.Prune(keep)
	} else {
		removed, err = deps.Store.Clear()
	}
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	_, _ = deps.Printf("removed %d entries\n", removed)
	return nil
}
