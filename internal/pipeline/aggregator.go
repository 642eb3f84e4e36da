package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/modeltab/internal/record"
)

// ErrNoInput means there was nothing to convert.
var ErrNoInput = errors.New("no data to write")

// Aggregator folds the records of a file set into one Corpus.
type Aggregator struct {
	proc        *Processor
	paramColumn string
	workers     int
	log         *slog.Logger
}

func NewAggregator(proc *Processor, paramColumn string, workers int, log *slog.Logger) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{proc: proc, paramColumn: paramColumn, workers: workers, log: log}
}

// Aggregate processes every source and folds the results in file-name order,
// so the corpus does not depend on the worker count or completion order.
// It returns ErrNoInput for an empty source list and ctx.Err() when cancelled.
func (a *Aggregator) Aggregate(ctx context.Context, sources []Source) (*record.Corpus, error) {
	if len(sources) == 0 {
		return nil, ErrNoInput
	}
	sorted := slices.Clone(sources)
	slices.SortStableFunc(sorted, func(x, y Source) int { return strings.Compare(x.Name, y.Name) })

	results := make([]*record.FlatRecord, len(sorted))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, src := range sorted {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.proc.Process(src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	corpus := record.NewCorpus(a.paramColumn)
	for _, r := range results {
		corpus.Add(r)
	}
	withData := corpus.WithTables()
	if withData == 0 {
		a.log.Warn("no tables found in any input", "files", len(results))
	}
	a.log.Info("aggregated corpus",
		"files", corpus.Len(),
		"with_tables", withData,
		"columns", len(corpus.Columns()),
	)
	return corpus, nil
}
