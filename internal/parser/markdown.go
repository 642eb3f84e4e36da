package parser

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Tables are usually
// pasted inside fenced code blocks; their lines are kept verbatim.
type MarkdownParser struct {
	Encoding string
	Policy   DecodePolicy
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	decoded, err := Decode(data, p.Encoding, p.Policy)
	if err != nil {
		return nil, err
	}
	src := []byte(decoded)

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var out strings.Builder
	prevStop := -1
	prevCode := false

	// Leaf blocks are written with their raw source lines. Consecutive blocks
	// that touch in the source stay together so an unfenced table is not split.
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n.Type() != ast.TypeBlock {
			return
		}
		lines := n.Lines()
		if lines.Len() == 0 {
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
			return
		}

		code := isCodeBlock(n)
		first := lines.At(0)
		if prevStop >= 0 {
			if code || prevCode || first.Start < prevStop || hasBlankLine(src[prevStop:first.Start]) {
				out.WriteString("\n\n")
			} else {
				out.WriteString("\n")
			}
		}
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if i > 0 {
				out.WriteByte('\n')
			}
			out.WriteString(strings.TrimRight(string(seg.Value(src)), "\r\n"))
		}
		prevStop = lines.At(lines.Len() - 1).Stop
		prevCode = code
	}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		walk(n)
	}

	return &Document{Name: filename, Text: out.String()}, nil
}

func isCodeBlock(n ast.Node) bool {
	switch n.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return true
	}
	return false
}

// hasBlankLine reports whether the source between two blocks contains an empty line.
func hasBlankLine(gap []byte) bool {
	s := strings.TrimPrefix(strings.TrimPrefix(string(gap), "\r"), "\n")
	for line := range strings.Lines(s) {
		if strings.HasSuffix(line, "\n") && strings.TrimSpace(line) == "" {
			return true
		}
	}
	return false
}
