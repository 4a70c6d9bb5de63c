package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/footprint-tools/commands/internal/domain"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level.
// Valid values: "debug", "info", "warn", "error" (case insensitive).
// Returns LevelWarn if the string is not recognized.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelWarn
	}
}

// Logger writes leveled lines to a file. Safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	out      io.WriteCloser
	minLevel Level
	enabled  bool
	session  string
	now      func() time.Time
}

var (
	defaultLogger   *Logger
	defaultLoggerMu sync.RWMutex
)

// SetDefault routes the package-level helpers to l. A nil l silences them.
func SetDefault(l *Logger) {
	defaultLoggerMu.Lock()
	defaultLogger = l
	defaultLoggerMu.Unlock()
}

// New creates a logger that appends to logPath.
func New(logPath string, minLevel Level) (*Logger, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	// Tighten permissions on a pre-existing file before reopening it.
	if info, err := os.Stat(logPath); err == nil {
		if info.Mode().Perm() != 0600 {
			if err := os.Chmod(logPath, 0600); err != nil {
				return nil, fmt.Errorf("chmod existing log file: %w", err)
			}
		}
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return NewWriter(file, minLevel), nil
}

// NewWriter creates a logger over an arbitrary sink. Close closes w.
func NewWriter(w io.WriteCloser, minLevel Level) *Logger {
	return &Logger{
		out:      w,
		minLevel: minLevel,
		enabled:  true,
		now:      time.Now,
	}
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	if l == nil || l.out == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Close()
}

// SetEnabled turns logging on or off.
func (l *Logger) SetEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// SetSession tags every following line with the first eight characters of
// id. An empty id removes the tag.
func (l *Logger) SetSession(id string) {
	if l == nil {
		return
	}
	if len(id) > 8 {
		id = id[:8]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.session = id
}

func (l *Logger) log(level Level, format string, args ...any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	timestamp := l.now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)

	var logLine string
	if l.session != "" {
		logLine = fmt.Sprintf("[%s] [%s] %s: %s\n", timestamp, l.session, level.String(), message)
	} else {
		logLine = fmt.Sprintf("[%s] %s: %s\n", timestamp, level.String(), message)
	}

	if _, err := io.WriteString(l.out, logLine); err != nil {
		if level >= LevelError {
			fmt.Fprintf(os.Stderr, "logger: write failed: %v (message: %s)\n", err, message)
		}
	}
}

func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Writer returns an io.Writer that logs each write at level.
func (l *Logger) Writer(level Level) io.Writer {
	return &logWriter{logger: l, level: level}
}

type logWriter struct {
	logger *Logger
	level  Level
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.logger.log(w.level, "%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Package-level helpers that use the global logger.

func Debug(format string, args ...any) {
	if l := GetLogger(); l != nil {
		l.Debug(format, args...)
	}
}

func Info(format string, args ...any) {
	if l := GetLogger(); l != nil {
		l.Info(format, args...)
	}
}

func Warn(format string, args ...any) {
	if l := GetLogger(); l != nil {
		l.Warn(format, args...)
	}
}

func Error(format string, args ...any) {
	if l := GetLogger(); l != nil {
		l.Error(format, args...)
	}
}

// Close closes the global logger.
func Close() error {
	if l := GetLogger(); l != nil {
		return l.Close()
	}
	return nil
}

// GetLogger returns the global logger, or nil before SetDefault.
func GetLogger() *Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// NopLogger is a logger that discards all messages.
// Useful for testing or when logging is disabled.
type NopLogger struct{}

func (NopLogger) Debug(_ string, _ ...any) {}
func (NopLogger) Info(_ string, _ ...any)  {}
func (NopLogger) Warn(_ string, _ ...any)  {}
func (NopLogger) Error(_ string, _ ...any) {}
func (NopLogger) Close() error             { return nil }

// Verify Logger implements domain.Logger
var _ domain.Logger = (*Logger)(nil)
var _ domain.Logger = NopLogger{}
