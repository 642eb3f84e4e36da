package writer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/modeltab/internal/record"
)

// FileWriter writes the output table to disk. When the target is locked or
// not writable it moves on to name_1.ext, name_2.ext, ... instead of failing.
type FileWriter struct {
	Options      Options
	MaxFallbacks int

	// OpenFile opens a path for writing; nil uses os.OpenFile.
	OpenFile func(name string) (io.WriteCloser, error)
}

// Write encodes g and stores it, returning the path actually written.
func (fw FileWriter) Write(path string, g record.Grid) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, g, fw.Options); err != nil {
		return "", fmt.Errorf("encode output: %w", err)
	}

	open := fw.OpenFile
	if open == nil {
		open = func(name string) (io.WriteCloser, error) {
			return os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		}
	}

	var lastErr error
	for i := 0; i <= fw.MaxFallbacks; i++ {
		name := FallbackName(path, i)
		f, err := open(name)
		if err != nil {
			if isLocked(err) {
				lastErr = err
				continue
			}
			return "", fmt.Errorf("open output: %w", err)
		}
		if _, err := f.Write(buf.Bytes()); err != nil {
			f.Close()
			return "", fmt.Errorf("write %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close %s: %w", name, err)
		}
		return name, nil
	}
	return "", fmt.Errorf("no writable output name after %d attempts: %w", fw.MaxFallbacks+1, lastErr)
}

// FallbackName returns path for n == 0 and "<stem>_<n><ext>" otherwise.
func FallbackName(path string, n int) string {
	if n == 0 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), n, ext)
}
