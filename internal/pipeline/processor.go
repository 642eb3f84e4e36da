package pipeline

import (
	"log/slog"
	"time"

	"github.com/dgallion1/modeltab/internal/params"
	"github.com/dgallion1/modeltab/internal/parser"
	"github.com/dgallion1/modeltab/internal/record"
	"github.com/dgallion1/modeltab/internal/table"
)

// Processor turns one input file into one FlatRecord.
type Processor struct {
	tables      *table.Parser
	parserOpts  parser.Options
	paramColumn string
	log         *slog.Logger
	stats       *Stats
}

func NewProcessor(tables *table.Parser, opts parser.Options, paramColumn string, log *slog.Logger, stats *Stats) *Processor {
	if tables == nil {
		tables = table.NewParser()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Processor{
		tables:      tables,
		parserOpts:  opts,
		paramColumn: paramColumn,
		log:         log,
		stats:       stats,
	}
}

// Process never fails. Read, decode and parse faults are logged and leave a
// record holding only the file name and an unknown size category.
func (p *Processor) Process(src Source) *record.FlatRecord {
	start := time.Now()
	log := p.log.With("file", src.Name)

	rec, ok := p.extract(src, log)
	if v, found := rec.Get(p.paramColumn); found {
		rec.Count = params.ParseCount(v)
	}
	rec.Category = params.Classify(rec.Count)

	p.stats.Observe(time.Since(start), rec.Category, !ok)
	log.Debug("processed file",
		"fields", rec.Len(),
		"category", rec.Category,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return rec
}

func (p *Processor) extract(src Source, log *slog.Logger) (*record.FlatRecord, bool) {
	rec := record.New(src.Name)

	fp, err := parser.ForFile(src.Name, p.parserOpts)
	if err != nil {
		log.Warn("unsupported format", "error", err)
		return rec, false
	}

	rc, err := src.Open()
	if err != nil {
		log.Warn("open failed", "error", err)
		return rec, false
	}
	defer rc.Close()

	doc, err := fp.Parse(rc, src.Name)
	if err != nil {
		log.Warn("parse failed", "error", err)
		return rec, false
	}

	tables := 0
	for t := range p.tables.Tables(doc.Text) {
		rec.AddTable(t)
		tables++
	}
	if tables == 0 {
		log.Debug("no tables found")
	}
	return rec, true
}
