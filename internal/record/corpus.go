package record

import (
	"slices"
	"strings"
)

// Grid is the final projected table: a header and one row per record.
type Grid struct {
	Columns []string
	Rows    [][]string
}

// Corpus accumulates one FlatRecord per input file together with the global schema.
type Corpus struct {
	records     []*FlatRecord
	schema      *Schema
	paramColumn string
}

// NewCorpus starts an empty corpus. The size category column is placed right
// after paramColumn when that column exists, otherwise at the end.
func NewCorpus(paramColumn string) *Corpus {
	c := &Corpus{schema: NewSchema(), paramColumn: paramColumn}
	c.schema.Add(FileColumn)
	return c
}

// Add appends r and registers its keys.
func (c *Corpus) Add(r *FlatRecord) {
	c.records = append(c.records, r)
	for _, k := range r.keys {
		// The derived column is positioned by Columns.
		if k == CategoryColumn {
			continue
		}
		c.schema.Add(k)
	}
}

func (c *Corpus) Len() int {
	return len(c.records)
}

// WithTables counts the records that hold at least one table column.
func (c *Corpus) WithTables() int {
	n := 0
	for _, r := range c.records {
		if r.Len() > 1 {
			n++
		}
	}
	return n
}

// Records returns the records in insertion order.
func (c *Corpus) Records() []*FlatRecord {
	return slices.Clone(c.records)
}

// Columns returns the global header.
func (c *Corpus) Columns() []string {
	cols := c.schema.Columns()
	at := len(cols)
	if i, ok := c.schema.Index(c.paramColumn); ok {
		at = i + 1
	}
	return slices.Insert(cols, at, CategoryColumn)
}

// Sorted returns the records ordered by size category, then count (unknown last), then filename.
func (c *Corpus) Sorted() []*FlatRecord {
	out := slices.Clone(c.records)
	slices.SortStableFunc(out, compareRecords)
	return out
}

func compareRecords(a, b *FlatRecord) int {
	if d := a.Category.Rank() - b.Category.Rank(); d != 0 {
		return d
	}
	if d := a.Count.Cmp(b.Count); d != 0 {
		return d
	}
	return strings.Compare(a.File(), b.File())
}

// Grid projects every record onto the global header in sorted order.
func (c *Corpus) Grid() Grid {
	cols := c.Columns()
	g := Grid{Columns: cols}
	for _, r := range c.Sorted() {
		g.Rows = append(g.Rows, Project(r, cols))
	}
	return g
}

// Project renders r as a row over cols; missing keys become empty strings.
func Project(r *FlatRecord, cols []string) []string {
	row := make([]string, len(cols))
	for i, col := range cols {
		row[i], _ = r.Get(col)
	}
	return row
}
