package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dgallion1/modeltab/internal/parser"
)

// Source is one input file. Name is the value of the file column and picks
// the parser by extension.
type Source struct {
	Name string
	Path string // empty for in-memory sources
	Open func() (io.ReadCloser, error)
}

// FileSource reads path from disk.
func FileSource(path string) Source {
	return Source{
		Name: filepath.Base(path),
		Path: path,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// BytesSource serves data from memory, e.g. an uploaded file.
func BytesSource(name string, data []byte) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Discovery is the result of scanning an input directory.
type Discovery struct {
	Sources []Source
	// Skipped lists matched files whose extension has no parser.
	Skipped []string
}

// Discover matches patterns against the non-recursive contents of dir.
// Matches are deduplicated and sorted by file name, byte-wise. Directories
// and the file at exclude are ignored.
func Discover(dir string, patterns []string, exclude string) (Discovery, error) {
	var d Discovery
	if _, err := os.Stat(dir); err != nil {
		return d, fmt.Errorf("input dir: %w", err)
	}

	excludeAbs := ""
	if exclude != "" {
		excludeAbs, _ = filepath.Abs(exclude)
	}

	seen := map[string]bool{}
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return d, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if abs, _ := filepath.Abs(m); excludeAbs != "" && abs == excludeAbs {
				continue
			}
			paths = append(paths, m)
		}
	}

	slices.SortFunc(paths, func(a, b string) int {
		if c := strings.Compare(filepath.Base(a), filepath.Base(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	for _, p := range paths {
		if !parser.IsSupportedExtension(p) {
			d.Skipped = append(d.Skipped, p)
			continue
		}
		d.Sources = append(d.Sources, FileSource(p))
	}
	return d, nil
}
