package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/modeltab/internal/pipeline"
	"github.com/dgallion1/modeltab/internal/watch"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Convert, then convert again whenever an input file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			log := newLogger(cfg, cmd.ErrOrStderr(), false)

			conv, err := pipeline.NewConverter(cfg, log, nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := watch.New(cfg.InputDir, cfg.Patterns, conv.OutputPath(), cfg.WatchDebounce,
				func(ctx context.Context) error {
					_, err := conv.Run(ctx)
					if errors.Is(err, pipeline.ErrNoInput) {
						log.Info("no data to write")
						return nil
					}
					return err
				}, log)
			return w.Run(ctx)
		},
	}
}
