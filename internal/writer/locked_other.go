//go:build !windows

package writer

import (
	"errors"
	"io/fs"
	"syscall"
)

// isLocked reports whether err means the file exists but cannot be written now.
func isLocked(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.ETXTBSY)
}
