package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

const (
	lockTimeout      = 5 * time.Second
	staleLockTimeout = 30 * time.Second
	lockPollInterval = 50 * time.Millisecond
)

// ErrLockTimeout is returned when another process holds the lock for
// longer than lockTimeout.
var ErrLockTimeout = errors.New("config: lock timeout")

// fileLock is an exclusive lock held by creating a file with O_EXCL. A lock
// file older than staleLockTimeout is assumed abandoned and removed.
type fileLock struct {
	path string
	f    *os.File
}

func acquire(path string) (*fileLock, error) {
	deadline := time.Now().Add(lockTimeout)

	for {
		if info, err := os.Stat(path); err == nil && time.Since(info.ModTime()) > staleLockTimeout {
			_ = os.Remove(path)
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
			return &fileLock{path: path, f: f}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		time.Sleep(lockPollInterval)
	}
}

func (l *fileLock) release() {
	_ = l.f.Close()
	_ = os.Remove(l.path)
}
