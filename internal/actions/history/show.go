package history

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/format"
	"github.com/footprint-tools/commands/internal/usage"
	"github.com/footprint-tools/commands/parser"
)

const defaultLimit = 20

// ErrDisabled is returned when history recording is turned off.
var ErrDisabled = fmt.Errorf("history is disabled; see 'set enable_history true'")

// Show lists recorded lines, oldest first, ending with the most recent.
//
// Parameters: --limit n, --outcome name, --contains text, --since
// duration (e.g. 2h), and the flags "all" (every session, not just this
// one) and "ago" (relative timestamps).
func Show(app *domain.Application) parser.Handler {
	deps := DefaultDeps(app)
	return func(inv parser.Invocation) error {
		return show(inv, deps)
	}
}

func show(inv parser.Invocation, deps Deps) error {
	if deps.Store == nil {
		return ErrDisabled
	}

	filter, err := buildFilter(inv, deps)
	if err != nil {
		return err
	}

	entries, err := deps.Store.List(filter)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(entries) == 0 {
		_, _ = deps.Println(deps.Styler.Muted("No history."))
		return nil
	}

	slices.Reverse(entries)
	now := deps.Now()
	showAll := inv.Values.Has("all")
	for _, e := range entries {
		stamp := deps.Format.DateTimeShort(e.Timestamp.Local())
		if inv.Values.Has("ago") {
			stamp = format.Ago(e.Timestamp, now)
		}

		line := e.Line
		if e.Outcome != domain.OutcomeOK {
			line = deps.Styler.Error(line) + " " + deps.Styler.Muted("["+string(e.Outcome)+"]")
		}

		if showAll {
			session := e.SessionID
			if len(session) > 8 {
				session = session[:8]
			}
			_, _ = deps.Printf("%5d  %s  %s  %s\n", e.ID, deps.Styler.Muted(stamp), deps.Styler.Muted(session), line)
			continue
		}
		_, _ = deps.Printf("%5d  %s  %s\n", e.ID, deps.Styler.Muted(stamp), line)
	}
	return nil
}

func buildFilter(inv parser.Invocation, deps Deps) (domain.HistoryFilter, error) {
	filter := domain.HistoryFilter{Limit: defaultLimit}

	if !inv.Values.Has("all") {
		filter.SessionID = deps.SessionID
	}

	if raw, ok := inv.Values.Get("--limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, usage.InvalidFlag("--limit " + raw)
		}
		filter.Limit = n
	}

	if raw, ok := inv.Values.Get("--outcome"); ok {
		o, valid := domain.ParseOutcome(raw)
		if !valid {
			return filter, usage.InvalidFlag("--outcome " + raw)
		}
		filter.Outcome = o
	}

	if raw, ok := inv.Values.Get("--contains"); ok {
		filter.Contains = raw
	}

	if raw, ok := inv.Values.Get("--since"); ok {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return filter, usage.InvalidFlag("--since " + raw)
		}
		since := deps.Now().Add(-d)
		filter.Since = &since
	}

	return filter, nil
}
