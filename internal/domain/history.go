package domain

import "time"

// Outcome classifies how an input line ended.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeNoMatch   Outcome = "no_match"
	OutcomeAmbiguous Outcome = "ambiguous"
	OutcomeMissing   Outcome = "missing"
	OutcomeTokenize  Outcome = "tokenize"
	OutcomeFailed    Outcome = "failed"
)

// Outcomes lists every outcome in display order.
func Outcomes() []Outcome {
	return []Outcome{OutcomeOK, OutcomeNoMatch, OutcomeAmbiguous, OutcomeMissing, OutcomeTokenize, OutcomeFailed}
}

// ParseOutcome returns the Outcome named s.
func ParseOutcome(s string) (Outcome, bool) {
	for _, o := range Outcomes() {
		if string(o) == s {
			return o, true
		}
	}
	return "", false
}

// HistoryEntry is one line entered in the shell.
type HistoryEntry struct {
	ID        int64
	SessionID string
	Line      string
	Outcome   Outcome
	Timestamp time.Time
}

// HistoryFilter narrows a history listing. Zero fields match everything.
type HistoryFilter struct {
	SessionID string
	Outcome   Outcome
	Contains  string
	Since     *time.Time
	Limit     int
}
