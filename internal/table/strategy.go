package table

// Strategy selects how a table's data row is mapped to column names.
// It is either StandardHeader or FixedSchema.
type Strategy interface {
	// pick chooses the header and data rows from the rows after the label.
	// bordered is set when borders split the block into sections.
	pick(body []row, bordered bool) (header, data []string, ok bool)
	columns(header []string) []string
}

// StandardHeader names columns from the first row after the label.
type StandardHeader struct{}

func (StandardHeader) pick(body []row, _ bool) ([]string, []string, bool) {
	if len(body) < 2 {
		return nil, nil, false
	}
	return body[0].cells, body[len(body)-1].cells, true
}

func (StandardHeader) columns(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = normalizeName(h)
	}
	return out
}

// FixedSchema ignores the header rows and applies a predefined column list.
// It is used for tables whose multi-row headers do not split cleanly on pipes.
type FixedSchema struct {
	Columns []string
}

// pick needs no header row, so a lone row after the label is data. In a
// bordered block, several rows sharing the final section are header rows that
// no data row follows.
func (FixedSchema) pick(body []row, bordered bool) ([]string, []string, bool) {
	if len(body) == 0 {
		return nil, nil, false
	}
	last := body[len(body)-1]
	if bordered && len(body) > 1 && body[0].section == last.section {
		return nil, nil, false
	}
	return nil, last.cells, true
}

func (s FixedSchema) columns([]string) []string {
	return s.Columns
}

// EstimateColumns is the column list of the ESTIMATE table.
var EstimateColumns = []string{
	"ARCH",
	"CONTEXT SIZE",
	"BATCH SIZE (L / P)",
	"FLASH ATTENTION",
	"MMAP LOAD",
	"EMBEDDING ONLY",
	"RERANKING",
	"DISTRIBUTABLE",
	"OFFLOAD LAYERS",
	"FULL OFFLOADED",
	"RAM LAYERS (I + T + O)",
	"RAM UMA",
	"RAM NONUMA",
	"VRAM0 LAYERS (T + O)",
	"VRAM0 UMA",
	"VRAM0 NONUMA",
}
