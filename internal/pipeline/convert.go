package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dgallion1/modeltab/internal/config"
	"github.com/dgallion1/modeltab/internal/table"
	"github.com/dgallion1/modeltab/internal/writer"
)

// Result describes one completed conversion.
type Result struct {
	Output  string // path actually written
	Files   int
	Tables  int // files that yielded at least one table
	Columns int
	Skipped []string
}

// Converter runs the directory conversion: discover, aggregate, write.
type Converter struct {
	cfg    config.Config
	agg    *Aggregator
	writer writer.FileWriter
	log    *slog.Logger
}

// NewConverter validates cfg and wires the pipeline. stats may be nil.
func NewConverter(cfg config.Config, log *slog.Logger, stats *Stats) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := cfg.WriterOptions()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	proc := NewProcessor(table.NewParser(), cfg.ParserOptions(), cfg.ParamColumn, log, stats)
	return &Converter{
		cfg:    cfg,
		agg:    NewAggregator(proc, cfg.ParamColumn, cfg.Workers, log),
		writer: writer.FileWriter{Options: opts, MaxFallbacks: cfg.MaxFallbacks},
		log:    log,
	}, nil
}

// OutputPath is the configured output, resolved against the input directory
// when relative.
func (c *Converter) OutputPath() string {
	if filepath.IsAbs(c.cfg.Output) {
		return c.cfg.Output
	}
	return filepath.Join(c.cfg.InputDir, c.cfg.Output)
}

// Run performs one conversion. It returns ErrNoInput when no input matched.
func (c *Converter) Run(ctx context.Context) (Result, error) {
	out := c.OutputPath()
	found, err := Discover(c.cfg.InputDir, c.cfg.Patterns, out)
	if err != nil {
		return Result{}, err
	}
	for _, s := range found.Skipped {
		c.log.Warn("skipping unsupported file", "file", s)
	}

	corpus, err := c.agg.Aggregate(ctx, found.Sources)
	if err != nil {
		return Result{Skipped: found.Skipped}, err
	}

	grid := corpus.Grid()
	written, err := c.writer.Write(out, grid)
	if err != nil {
		return Result{Skipped: found.Skipped}, fmt.Errorf("write output: %w", err)
	}
	if written != out {
		c.log.Warn("output path unavailable, used fallback", "wanted", out, "written", written)
	}

	res := Result{
		Output:  written,
		Files:   corpus.Len(),
		Tables:  corpus.WithTables(),
		Columns: len(grid.Columns),
		Skipped: found.Skipped,
	}
	c.log.Info("conversion complete", "output", res.Output, "files", res.Files, "columns", res.Columns)
	return res, nil
}
