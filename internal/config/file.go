// Package config reads and edits the shell's rc file, a list of key=value
// lines with comments.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/log"
)

// File is an rc file on disk.
type File struct {
	path string
}

// Open returns the rc file at path. Nothing is read until Lines.
func Open(path string) *File {
	return &File{path: path}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Lines returns the file's lines. A missing or empty file is created and
// seeded with the visible defaults first.
func (f *File) Lines() ([]string, error) {
	if f.path == "" {
		return nil, errors.New("config: no file path")
	}

	data, err := os.ReadFile(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read %s: %w", f.path, err)
	}

	if len(data) == 0 {
		lines := seedLines()
		if err := f.Save(lines); err != nil {
			log.Warn("config: could not write default config: %v", err)
		}
		return lines, nil
	}

	if err := os.Chmod(f.path, 0600); err != nil {
		log.Warn("config: could not set permissions on config file: %v", err)
	}

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: scan %s: %w", f.path, err)
	}
	return lines, nil
}

// Values parses the file.
func (f *File) Values() (map[string]string, error) {
	lines, err := f.Lines()
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

// Save replaces the file contents atomically: the lines go to a temporary
// file in the same directory which is then renamed over the original.
func (f *File) Save(lines []string) (err error) {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("config: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := tmp.Chmod(0600); err != nil {
		return err
	}

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// Update applies edit to the current lines and saves the result while
// holding the file's lock.
func (f *File) Update(edit func([]string) []string) error {
	if f.path == "" {
		return errors.New("config: no file path")
	}
	l, err := acquire(f.path + ".lock")
	if err != nil {
		return err
	}
	defer l.release()

	lines, err := f.Lines()
	if err != nil {
		return err
	}
	return f.Save(edit(lines))
}

// seedLines is the content of a fresh rc file. Optional overrides are
// written commented out.
func seedLines() []string {
	lines := []string{
		"# cmdsh configuration",
		"# Edit values below or use: set <key> <value>",
		"",
	}
	for _, key := range domain.ConfigKeys {
		if key.Hidden {
			continue
		}
		if key.HideIfEmpty {
			lines = append(lines, "# "+key.Name+"=")
			continue
		}
		lines = append(lines, key.Name+"="+quote(key.Default))
	}
	return lines
}
