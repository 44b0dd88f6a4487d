package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lmerrors "github.com/rileyhilliard/ledmon/internal/errors"
)

// Lock is a held single-instance lock. The lock file holds the holder's
// LockInfo as JSON so a second instance can say who is running.
type Lock struct {
	Path string
	Info *LockInfo
	file *os.File
}

// TryAcquire takes the lock at path without waiting. If another process
// holds it the returned error wraps ErrLocked.
func TryAcquire(path, command string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, lmerrors.WrapWithCode(err, lmerrors.ErrLock,
			fmt.Sprintf("Cannot create lock directory for %s", path),
			"Set 'lock_file' to a writable location")
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, lmerrors.WrapWithCode(err, lmerrors.ErrLock,
			fmt.Sprintf("Cannot open lock file %s", path),
			"Set 'lock_file' to a writable location")
	}

	if err := tryLock(f); err != nil {
		f.Close()
		if errors.Is(err, ErrLocked) {
			return nil, lmerrors.WrapWithCode(ErrLocked, lmerrors.ErrLock,
				"Another ledmon instance is already running",
				fmt.Sprintf("Held by %s. Stop it first, or point 'lock_file' elsewhere.", Holder(path)))
		}
		return nil, lmerrors.WrapWithCode(err, lmerrors.ErrLock,
			fmt.Sprintf("Failed to lock %s", path), "")
	}

	info, err := NewLockInfo(command)
	if err != nil {
		unlock(f)
		f.Close()
		return nil, lmerrors.WrapWithCode(err, lmerrors.ErrLock,
			"Failed to create lock info",
			"Check hostname and user environment")
	}
	if err := writeInfo(f, info); err != nil {
		unlock(f)
		f.Close()
		return nil, lmerrors.WrapWithCode(err, lmerrors.ErrLock,
			"Failed to write lock info file",
			"Check disk space and permissions")
	}

	return &Lock{Path: path, Info: info, file: f}, nil
}

func writeInfo(f *os.File, info *LockInfo) error {
	data, err := info.Marshal()
	if err != nil {
		return err
	}
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.WriteAt(data, 0); err != nil {
		return err
	}
	return f.Sync()
}

// Release clears the holder info and drops the lock. The file itself stays
// so that a waiting process never locks an unlinked inode.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	_ = l.file.Truncate(0)
	err := unlock(l.file)
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return err
}

// Holder returns information about who holds the lock (if readable).
func Holder(path string) string {
	data, err := os.ReadFile(path)
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return "unknown"
	}

	info, err := ParseLockInfo(data)
	if err != nil {
		return strings.TrimSpace(string(data))
	}
	return info.String()
}
