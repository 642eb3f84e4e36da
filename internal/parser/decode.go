package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding is returned under PolicyStrict for input that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid utf-8 in input")

// DecodePolicy says what happens to byte sequences that are not valid UTF-8.
type DecodePolicy string

const (
	PolicyStrict  DecodePolicy = "strict"  // reject the content
	PolicyReplace DecodePolicy = "replace" // substitute U+FFFD
	PolicyDrop    DecodePolicy = "drop"    // remove the bytes
)

// ParsePolicy validates a policy name. Empty selects PolicyDrop.
func ParsePolicy(s string) (DecodePolicy, error) {
	switch p := DecodePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyDrop, nil
	case PolicyStrict, PolicyReplace, PolicyDrop:
		return p, nil
	default:
		return "", fmt.Errorf("unknown decode policy %q", s)
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw input to UTF-8 text. A leading BOM is removed.
// Under PolicyDrop any U+FFFD already present in the input is removed as well.
func Decode(data []byte, encoding string, policy DecodePolicy) (string, error) {
	if !isUTF8(encoding) {
		enc, err := htmlindex.Get(encoding)
		if err != nil {
			return "", fmt.Errorf("input encoding %q: %w", encoding, err)
		}
		data, err = enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", encoding, err)
		}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return string(data), nil
	}

	var t transform.Transformer
	switch policy {
	case PolicyStrict:
		return "", ErrInvalidEncoding
	case PolicyReplace:
		t = runes.ReplaceIllFormed()
	default:
		t = runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError }))
	}
	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return string(out), nil
}

func isUTF8(encoding string) bool {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8", "unicode-1-1-utf-8":
		return true
	}
	return false
}
