package table

import (
	"fmt"
	"iter"
	"strings"

	"github.com/dgallion1/modeltab/internal/record"
)

// Parser turns blocks into labeled tables.
type Parser struct {
	strategies map[string]Strategy
}

// NewParser returns a parser that reads ESTIMATE tables with EstimateColumns
// and every other label with StandardHeader.
func NewParser() *Parser {
	return &Parser{
		strategies: map[string]Strategy{
			"ESTIMATE": FixedSchema{Columns: EstimateColumns},
		},
	}
}

// Use registers a strategy for label, replacing any existing one.
func (p *Parser) Use(label string, s Strategy) *Parser {
	p.strategies[strings.ToUpper(label)] = s
	return p
}

func (p *Parser) strategyFor(label string) Strategy {
	if s, ok := p.strategies[label]; ok {
		return s
	}
	return StandardHeader{}
}

// Parse reads one block. It returns false when the block has no label or no data row.
//
// Only lines starting with a pipe are rows, so text sharing the block with a
// box never becomes its label. The first row carries the label. The strategy
// picks the header and data rows from the rest; rows with a single cell are
// ignored. Cells past the named columns become EXTRA_1, EXTRA_2, ... and
// columns without a cell get an empty value. Header cells with no name are dropped.
func (p *Parser) Parse(b Block) (record.Table, bool) {
	rows := scanRows(b)
	if len(rows) == 0 {
		return record.Table{}, false
	}

	label := strings.ToUpper(normalizeName(rows[0].cells[0]))
	if label == "" {
		return record.Table{}, false
	}

	var body []row
	for _, r := range rows[1:] {
		if len(r.cells) > 1 {
			body = append(body, r)
		}
	}
	t := record.Table{Label: label}
	s := p.strategyFor(label)
	header, data, ok := s.pick(body, rows[len(rows)-1].section > 0)
	if !ok {
		return t, false
	}
	names := s.columns(header)

	extra := 0
	for i, cell := range data {
		if i >= len(names) {
			extra++
			t.Fields = append(t.Fields, record.Field{Name: fmt.Sprintf("EXTRA_%d", extra), Value: cell})
			continue
		}
		if names[i] == "" {
			continue
		}
		t.Fields = append(t.Fields, record.Field{Name: names[i], Value: cell})
	}
	for _, name := range names[min(len(data), len(names)):] {
		if name != "" {
			t.Fields = append(t.Fields, record.Field{Name: name})
		}
	}
	return t, true
}

// Tables parses every block of text, skipping the unusable ones.
func (p *Parser) Tables(text string) iter.Seq[record.Table] {
	return func(yield func(record.Table) bool) {
		for b := range Blocks(text) {
			t, ok := p.Parse(b)
			if !ok {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// row is one pipe row and the index of the border-delimited section it sits in.
type row struct {
	cells   []string
	section int
}

// scanRows collects the pipe rows of b. Full borders start a new section;
// partial rules inside multi-row headers do not.
func scanRows(b Block) []row {
	var rows []row
	section := 0
	for _, line := range b {
		s := strings.TrimSpace(line)
		if isBorder(s) {
			if isFullBorder(s) && len(rows) > 0 && rows[len(rows)-1].section == section {
				section++
			}
			continue
		}
		if !strings.HasPrefix(s, "|") {
			continue
		}
		rows = append(rows, row{cells: splitCells(s), section: section})
	}
	return rows
}

// isFullBorder reports whether a border spans every column. "|   |  +---+"
// rules only some of them.
func isFullBorder(s string) bool {
	if !strings.HasPrefix(s, "|") {
		return true
	}
	for _, c := range splitCells(s) {
		if c == "" {
			return false
		}
	}
	return true
}

// isBorder reports whether line is a box rule such as "+----+----+" or "|====|".
func isBorder(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	rule := false
	for _, r := range s {
		switch r {
		case '-', '=':
			rule = true
		case '+', ' ', '\t':
		case '|', ':':
			// Pipes only appear in markdown-style separators like "|---|:--|".
			if !strings.Contains(s, "---") {
				return false
			}
		default:
			return false
		}
	}
	return rule
}

// splitCells turns "| a | b |" into ["a", "b"].
func splitCells(line string) []string {
	s := strings.Trim(strings.TrimSpace(line), "|")
	cells := strings.Split(s, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// normalizeName collapses whitespace runs, e.g. "CONTEXT    SIZE" -> "CONTEXT SIZE".
func normalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
