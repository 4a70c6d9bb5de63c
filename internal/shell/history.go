package shell

import (
	"slices"

	"github.com/footprint-tools/commands/internal/config"
	"github.com/footprint-tools/commands/internal/domain"
)

const defaultHistoryLimit = 1000

// record stores line in the history log. Failures are logged, never
// returned: a broken history must not break the shell.
func (s *Shell) record(line string, outcome domain.Outcome) {
	if s.history == nil {
		return
	}
	_, err := s.history.Insert(domain.HistoryEntry{
		SessionID: s.sessionID,
		Line:      line,
		Outcome:   outcome,
		Timestamp: s.now(),
	})
	if err != nil {
		s.logger.Warn("shell: record history: %v", err)
	}
}

// recent returns up to n successful lines, oldest first, for line editing.
func (s *Shell) recent(n int) []string {
	if s.history == nil {
		return nil
	}
	entries, err := s.history.List(domain.HistoryFilter{Outcome: domain.OutcomeOK, Limit: n})
	if err != nil {
		s.logger.Warn("shell: load history: %v", err)
		return nil
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Line)
	}
	slices.Reverse(lines)
	return lines
}

// PruneHistory trims the history log to the configured history_limit.
// A limit of 0 keeps everything.
func (s *Shell) PruneHistory() (int64, error) {
	if s.history == nil {
		return 0, nil
	}
	return s.history.Prune(config.Int(s.config, "history_limit", defaultHistoryLimit))
}
