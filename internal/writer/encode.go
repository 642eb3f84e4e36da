package writer

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"golang.org/x/text/transform"

	"github.com/dgallion1/modeltab/internal/record"
)

// Encode writes the header and rows of g to w.
func Encode(w io.Writer, g record.Grid, opts Options) error {
	t, err := encoder(opts.Encoding)
	if err != nil {
		return err
	}
	if t != nil {
		tw := transform.NewWriter(w, t)
		if err := encodeRows(tw, g, opts); err != nil {
			tw.Close()
			return err
		}
		return tw.Close()
	}
	return encodeRows(w, g, opts)
}

func encodeRows(w io.Writer, g record.Grid, opts Options) error {
	if opts.Quoting == QuoteMinimal {
		cw := csv.NewWriter(w)
		cw.Comma = opts.Delimiter
		if err := cw.Write(g.Columns); err != nil {
			return err
		}
		if err := cw.WriteAll(g.Rows); err != nil {
			return err
		}
		return cw.Error()
	}

	bw := bufio.NewWriter(w)
	writeQuoted(bw, g.Columns, opts.Delimiter)
	for _, row := range g.Rows {
		writeQuoted(bw, row, opts.Delimiter)
	}
	return bw.Flush()
}

// writeQuoted writes one line with every field quoted and inner quotes doubled.
// encoding/csv only quotes when a field requires it.
func writeQuoted(bw *bufio.Writer, fields []string, delim rune) {
	for i, f := range fields {
		if i > 0 {
			bw.WriteRune(delim)
		}
		bw.WriteByte('"')
		bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
		bw.WriteByte('"')
	}
	bw.WriteByte('\n')
}
