package app

import (
	"io"

	"github.com/google/uuid"

	"github.com/footprint-tools/commands/internal/config"
	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/log"
	"github.com/footprint-tools/commands/internal/paths"
	"github.com/footprint-tools/commands/internal/store"
	"github.com/footprint-tools/commands/internal/ui"
	"github.com/footprint-tools/commands/internal/ui/style"
)

// Options configures the application factory.
type Options struct {
	// Log options
	LogEnabled bool
	LogLevel   log.Level
	LogPath    string // defaults to paths.LogFilePath()

	// History options
	HistoryEnabled bool
	HistoryPath    string // defaults to paths.HistoryDBPath()

	// Style options
	StyleEnabled bool
	StyleConfig  map[string]string

	// Output defaults to stdout.
	Output io.Writer
}

// DefaultOptions returns the options stored in the config file.
func DefaultOptions() Options {
	provider := config.NewProvider()
	styleConfig, _ := provider.GetAll()
	level, _ := provider.Get("log_level")

	return Options{
		LogEnabled:     config.Bool(provider, "enable_log", true),
		LogLevel:       log.ParseLevel(level),
		HistoryEnabled: config.Bool(provider, "enable_history", true),
		StyleEnabled:   true,
		StyleConfig:    styleConfig,
	}
}

// New creates a new Application with all dependencies wired up. Every
// Application gets a fresh session ID that tags its log lines and
// history entries.
func New(opts Options) (*domain.Application, error) {
	sessionID := uuid.NewString()

	var logger domain.Logger = log.NopLogger{}
	if opts.LogEnabled {
		logPath := opts.LogPath
		if logPath == "" {
			logPath = paths.LogFilePath()
		}
		// A log file that cannot be opened does not stop the shell.
		if l, err := log.New(logPath, opts.LogLevel); err == nil {
			l.SetSession(sessionID)
			log.SetDefault(l)
			logger = l
		}
	}

	var history domain.HistoryStore
	if opts.HistoryEnabled {
		dbPath := opts.HistoryPath
		if dbPath == "" {
			dbPath = paths.HistoryDBPath()
		}
		s, err := store.New(dbPath)
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
		history = s
	}

	style.Init(opts.StyleEnabled, opts.StyleConfig)

	output := ui.NewWriter()
	if opts.Output != nil {
		output = ui.NewWriterTo(opts.Output)
	}

	return &domain.Application{
		Store:     history,
		Config:    config.NewProvider(),
		Logger:    logger,
		Output:    output,
		Styler:    style.NewStyler(),
		SessionID: sessionID,
	}, nil
}

// NewForTesting creates an Application suitable for testing: output goes
// to out, history is disabled, and there is no logging or styling.
func NewForTesting(out io.Writer) *domain.Application {
	return &domain.Application{
		Config:    config.NewProvider(),
		Logger:    log.NopLogger{},
		Output:    ui.NewWriterTo(out),
		Styler:    style.NopStyler{},
		SessionID: "00000000-0000-4000-8000-000000000000",
	}
}

// Close cleans up application resources.
func Close(app *domain.Application) error {
	if app.Logger != nil {
		if l, ok := app.Logger.(*log.Logger); ok && log.GetLogger() == l {
			log.SetDefault(nil)
		}
		_ = app.Logger.Close()
	}
	if app.Store != nil {
		_ = app.Store.Close()
	}
	return nil
}
