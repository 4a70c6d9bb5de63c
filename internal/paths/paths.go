package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "cmdsh"

// AppDataDir returns the application data directory for config and logs.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)

	// Use restrictive permissions for application data
	_ = os.MkdirAll(path, 0700)

	return path
}

// AppLocalDataDir returns the OS-appropriate local data directory.
// The history database lives here.
//   - macOS: ~/Library/Application Support/cmdsh
//   - Linux: $XDG_DATA_HOME/cmdsh or ~/.local/share/cmdsh
//   - Windows: %LOCALAPPDATA%\cmdsh
func AppLocalDataDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// HistoryDBPath returns the path to the SQLite history database.
func HistoryDBPath() string {
	return filepath.Join(AppLocalDataDir(), "history.db")
}

// ConfigFilePath returns the path to the rc file, ~/.cmdshrc.
func ConfigFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".cmdshrc"), nil
}

// LogFilePath returns the path to the application log file.
//   - macOS: ~/Library/Application Support/cmdsh/cmdsh.log
//   - Linux: $XDG_CONFIG_HOME/cmdsh/cmdsh.log or ~/.config/cmdsh/cmdsh.log
//   - Windows: %AppData%\cmdsh\cmdsh.log
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "cmdsh.log")
}
