// Package shell runs the interactive command loop: read a line, resolve it
// against the grammar, run it and explain what went wrong when it fails.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/footprint-tools/commands/internal/config"
	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/log"
	"github.com/footprint-tools/commands/internal/ui/style"
	"github.com/footprint-tools/commands/internal/usage"
	"github.com/footprint-tools/commands/parser"
	"github.com/footprint-tools/commands/tokenizer"
)

// ErrExit is returned by a handler to end the session.
var ErrExit = errors.New("exit")

// historyPreload is how many stored lines are offered to line editing at
// start-up.
const historyPreload = 200

// Shell evaluates lines against one frozen grammar.
type Shell struct {
	root        *parser.RootNode
	out         domain.OutputWriter
	styler      domain.Styler
	logger      domain.Logger
	config      domain.ConfigProvider
	history     domain.HistoryStore
	sessionID   string
	suggest     bool
	in          io.Reader
	interactive bool
	now         func() time.Time
}

// Option configures a Shell.
type Option func(*Shell)

// WithInput reads lines from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(s *Shell) { s.in = r }
}

// Interactive switches to line editing with completion. Only meaningful
// when input is a terminal.
func Interactive(on bool) Option {
	return func(s *Shell) { s.interactive = on }
}

// WithClock replaces time.Now for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

// New creates a shell over root. Missing application services fall back
// to no-op implementations; a nil Store disables history.
func New(app *domain.Application, root *parser.RootNode, opts ...Option) *Shell {
	s := &Shell{
		root:      root,
		out:       app.Output,
		styler:    app.Styler,
		logger:    app.Logger,
		config:    app.Config,
		history:   app.Store,
		sessionID: app.SessionID,
		in:        os.Stdin,
		now:       time.Now,
	}
	if s.styler == nil {
		s.styler = style.NopStyler{}
	}
	if s.logger == nil {
		s.logger = log.NopLogger{}
	}
	s.suggest = config.Bool(s.config, "suggest", true)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root is the grammar the shell evaluates against.
func (s *Shell) Root() *parser.RootNode {
	return s.root
}

// Eval runs one line: tokenize, parse, verify, execute. A line ending in
// "?" lists the options at that point instead. The returned error is the
// first failing stage's error, unchanged.
func (s *Shell) Eval(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if strings.HasSuffix(trimmed, "?") {
		return s.describe(strings.TrimSuffix(trimmed, "?"))
	}

	err := s.eval(trimmed)
	s.record(trimmed, outcomeOf(err))
	if err != nil && !errors.Is(err, ErrExit) {
		s.logger.Debug("shell: %q: %v", trimmed, err)
	}
	return err
}

func (s *Shell) eval(line string) error {
	tokens, err := tokenizer.Tokenize(line)
	if err != nil {
		return err
	}

	st, err := parser.New(s.root).Parse(tokens)
	if err != nil {
		return err
	}
	if err := st.Verify(); err != nil {
		return err
	}
	return st.Execute()
}

// RunLine evaluates a single line for non-interactive use. Failures are
// reported on the output and returned as a usage error.
func (s *Shell) RunLine(line string) error {
	err := s.Eval(line)
	if err == nil || errors.Is(err, ErrExit) {
		return nil
	}
	s.report(strings.TrimSpace(line), err)
	return usage.FromParse(err)
}

// Run reads and evaluates lines until end of input, ErrExit or ctx is
// cancelled. Line errors are reported and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	s.logger.Info("shell: session started")
	defer s.logger.Info("shell: session ended")

	if n, err := s.PruneHistory(); err != nil {
		s.logger.Warn("shell: prune history: %v", err)
	} else if n > 0 {
		s.logger.Debug("shell: pruned %d history entries", n)
	}

	if s.interactive {
		rl, err := s.newReadline()
		if err == nil {
			defer rl.Close()
			return s.loop(ctx, func() (string, error) {
				rl.SetPrompt(s.prompt())
				return rl.Readline()
			})
		}
		s.logger.Warn("shell: line editing unavailable: %v", err)
	}

	reader := bufio.NewReader(s.in)
	return s.loop(ctx, func() (string, error) {
		if s.interactive {
			s.out.Printf("%s", s.prompt())
		}
		line, err := reader.ReadString('\n')
		if err == io.EOF && line != "" {
			return line, nil
		}
		return line, err
	})
}

func (s *Shell) loop(ctx context.Context, next func() (string, error)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := next()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("read line: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if err := s.Eval(line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			s.report(strings.TrimSpace(line), err)
		}
	}
}

func (s *Shell) prompt() string {
	var name string
	if s.config != nil {
		name, _ = s.config.Get("prompt")
	}
	if name == "" {
		name = "cmdsh"
	}
	return s.styler.Prompt(name) + "> "
}

func (s *Shell) newReadline() (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		AutoComplete:    &completer{root: s.root},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		HistoryLimit:    historyPreload,
		Stdout:          s.out,
	})
	if err != nil {
		return nil, err
	}

	for _, line := range s.recent(historyPreload) {
		_ = rl.SaveHistory(line)
	}
	return rl, nil
}

// outcomeOf classifies a line's error for the history log.
func outcomeOf(err error) domain.Outcome {
	if err == nil || errors.Is(err, ErrExit) {
		return domain.OutcomeOK
	}

	var tokErr *tokenizer.Error
	if errors.As(err, &tokErr) {
		return domain.OutcomeTokenize
	}

	var perr *parser.Error
	if !errors.As(err, &perr) {
		return domain.OutcomeFailed
	}
	switch perr.Kind {
	case parser.NoMatches:
		if perr.Token == "" {
			return domain.OutcomeMissing
		}
		return domain.OutcomeNoMatch
	case parser.AmbiguousMatch:
		return domain.OutcomeAmbiguous
	case parser.MissingRequired:
		return domain.OutcomeMissing
	}
	return domain.OutcomeFailed
}
