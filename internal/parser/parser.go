package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned by ForFile for extensions with no parser.
var ErrUnsupported = errors.New("unsupported file extension")

// Document is the decoded text of one input file. Tables inside it are
// separated from surrounding content by blank lines.
type Document struct {
	Name string
	Text string
}

// Parser converts raw file bytes into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// Options control decoding for the text-based formats and the PDF fallback.
type Options struct {
	Encoding             string // WHATWG label of the input encoding; empty means UTF-8.
	Policy               DecodePolicy
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions this tool can read.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".log":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".log":
		return &TextParser{Encoding: opts.Encoding, Policy: opts.Policy}, nil
	case ".md", ".markdown":
		return &MarkdownParser{Encoding: opts.Encoding, Policy: opts.Policy}, nil
	case ".html", ".htm":
		return &HTMLParser{Encoding: opts.Encoding, Policy: opts.Policy}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// pipeRow renders cells as "| a | b |" so rebuilt tables match the text layout.
func pipeRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}
