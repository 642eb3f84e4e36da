package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_FencedTableKeptVerbatim(t *testing.T) {
	input := "# Run 1\n\nSome notes.\n\n```\n+------+\n| METADATA |\n+------+\n| TYPE | PARAMETERS |\n| model | 7.24 B |\n+------+\n```\n\nMore notes.\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "run.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "+------+\n| METADATA |\n+------+\n| TYPE | PARAMETERS |\n| model | 7.24 B |\n+------+"
	if !strings.Contains(doc.Text, "\n\n"+want+"\n\n") {
		t.Errorf("expected fenced table as its own block, got:\n%s", doc.Text)
	}
	if !strings.HasPrefix(doc.Text, "Run 1\n\nSome notes.") {
		t.Errorf("expected heading and paragraph first, got:\n%s", doc.Text)
	}
	if !strings.HasSuffix(doc.Text, "More notes.") {
		t.Errorf("expected trailing paragraph, got:\n%s", doc.Text)
	}
}

func TestMarkdownParser_UnfencedTableStaysTogether(t *testing.T) {
	input := "| ARCHITECTURE |\n| LAYERS | HEADS |\n| 32 | 8 |\n\nafter\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "run.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blocks := strings.Split(doc.Text, "\n\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %q", len(blocks), doc.Text)
	}
	if !strings.Contains(blocks[0], "| 32 | 8 |") {
		t.Errorf("expected data row in first block, got %q", blocks[0])
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}
