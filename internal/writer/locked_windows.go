//go:build windows

package writer

import (
	"errors"
	"io/fs"
	"syscall"
)

// ERROR_SHARING_VIOLATION and ERROR_LOCK_VIOLATION, raised while a
// spreadsheet application holds the file open.
const (
	errSharingViolation syscall.Errno = 32
	errLockViolation    syscall.Errno = 33
)

// isLocked reports whether err means the file exists but cannot be written now.
func isLocked(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, errSharingViolation) || errors.Is(err, errLockViolation)
}
