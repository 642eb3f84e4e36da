package parser

import (
	"io"
)

// TextParser handles plain text and log files.
type TextParser struct {
	Encoding string
	Policy   DecodePolicy
}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, err := Decode(data, p.Encoding, p.Policy)
	if err != nil {
		return nil, err
	}
	return &Document{Name: filename, Text: text}, nil
}
