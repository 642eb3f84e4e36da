package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
)

func TestDOCXParser_ParagraphsAndTables(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText("| METADATA |")
	w.AddParagraph().AddText("| TYPE | PARAMETERS |")
	w.AddParagraph().AddText("| model | 7.24 B |")

	tbl := w.AddTable(3, 2, 0, nil)
	cells := [][]string{{"ARCHITECTURE", ""}, {"LAYERS", "HEADS"}, {"32", "8"}}
	for i, row := range cells {
		for j, v := range row {
			if v != "" {
				tbl.TableRows[i].TableCells[j].AddParagraph().AddText(v)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	p := &DOCXParser{}
	doc, err := p.Parse(&buf, "report.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc.Text, "| METADATA |\n| TYPE | PARAMETERS |\n| model | 7.24 B |") {
		t.Errorf("expected paragraph lines, got:\n%s", doc.Text)
	}
	if !strings.Contains(doc.Text, "\n\n| ARCHITECTURE |  |\n| LAYERS | HEADS |\n| 32 | 8 |") {
		t.Errorf("expected table rows as their own block, got:\n%s", doc.Text)
	}
}
