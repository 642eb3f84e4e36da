package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_PreAndTables(t *testing.T) {
	input := `<html><head><title>report</title><script>var x;</script></head><body>
<h1>Model report</h1>
<pre>
+-------+
| METADATA |
+-------+
| TYPE | PARAMETERS |
| model | 22.57 M |
+-------+
</pre>
<table>
  <caption>ARCHITECTURE</caption>
  <tr><th>LAYERS</th><th>HEADS</th></tr>
  <tr><td>32</td><td>8</td></tr>
</table>
</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "report.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blocks := strings.Split(doc.Text, "\n\n")
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %q", len(blocks), doc.Text)
	}
	if blocks[0] != "Model report" {
		t.Errorf("expected heading block, got %q", blocks[0])
	}
	if !strings.HasPrefix(blocks[1], "+-------+\n| METADATA |") {
		t.Errorf("expected pre block verbatim, got %q", blocks[1])
	}
	wantTable := "| ARCHITECTURE |\n| LAYERS | HEADS |\n| 32 | 8 |"
	if blocks[2] != wantTable {
		t.Errorf("expected %q, got %q", wantTable, blocks[2])
	}
	if strings.Contains(doc.Text, "var x") {
		t.Error("expected script content skipped")
	}
}

func TestHTMLParser_HeadingLabelsUncaptionedTable(t *testing.T) {
	input := `<html><body>
<h2>Metadata</h2>
<table>
  <tr><th>NAME</th><th>PARAMETERS</th></tr>
  <tr><td>llama</td><td>8.03 B</td></tr>
</table>
<h2>Other</h2>
<table>
  <caption>ARCHITECTURE</caption>
  <tr><th>LAYERS</th></tr>
  <tr><td>32</td></tr>
</table>
</body></html>`

	doc, err := (&HTMLParser{}).Parse(strings.NewReader(input), "report.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blocks := strings.Split(doc.Text, "\n\n")
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d: %q", len(blocks), doc.Text)
	}
	want := "| Metadata |\n| NAME | PARAMETERS |\n| llama | 8.03 B |"
	if blocks[1] != want {
		t.Errorf("expected %q, got %q", want, blocks[1])
	}
	if !strings.HasPrefix(blocks[3], "| ARCHITECTURE |\n") {
		t.Errorf("expected caption to win over heading, got %q", blocks[3])
	}
}
