package writer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Quoting selects when fields are wrapped in double quotes.
type Quoting string

const (
	QuoteAll     Quoting = "all"     // every field, header included
	QuoteMinimal Quoting = "minimal" // only fields that need it
)

const (
	// EncodingUTF8BOM is UTF-8 with a leading byte order mark, which spreadsheet
	// applications use to detect UTF-8.
	EncodingUTF8BOM = "utf-8-sig"
	EncodingUTF8    = "utf-8"
)

// Options control the delimited output.
type Options struct {
	Delimiter rune
	Quoting   Quoting
	Encoding  string
}

// DefaultOptions is semicolon-delimited, fully quoted, UTF-8 with BOM.
func DefaultOptions() Options {
	return Options{Delimiter: ';', Quoting: QuoteAll, Encoding: EncodingUTF8BOM}
}

// ParseOptions validates textual settings. Empty values take the defaults.
func ParseOptions(delimiter, quoting, enc string) (Options, error) {
	opts := DefaultOptions()

	if delimiter != "" {
		if delimiter == `\t` || strings.EqualFold(delimiter, "tab") {
			delimiter = "\t"
		}
		r, size := utf8.DecodeRuneInString(delimiter)
		if size != len(delimiter) || r == utf8.RuneError {
			return opts, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		if r == '"' || r == '\r' || r == '\n' {
			return opts, fmt.Errorf("invalid delimiter %q", delimiter)
		}
		opts.Delimiter = r
	}

	switch q := Quoting(strings.ToLower(quoting)); q {
	case "":
	case QuoteAll, QuoteMinimal:
		opts.Quoting = q
	default:
		return opts, fmt.Errorf("unknown quoting %q (want all or minimal)", quoting)
	}

	if enc != "" {
		opts.Encoding = strings.ToLower(enc)
		if _, err := encoder(opts.Encoding); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// encoder returns the transformer for enc, or nil for plain UTF-8.
func encoder(enc string) (transform.Transformer, error) {
	switch strings.ToLower(enc) {
	case "", EncodingUTF8, "utf8":
		return nil, nil
	case EncodingUTF8BOM, "utf-8-bom", "utf8-bom":
		return unicode.UTF8BOM.NewEncoder(), nil
	}
	e, err := htmlindex.Get(enc)
	if err != nil {
		return nil, fmt.Errorf("output encoding %q: %w", enc, err)
	}
	if e == unicode.UTF8 {
		return nil, nil
	}
	return encoding.ReplaceUnsupported(e.NewEncoder()), nil
}
