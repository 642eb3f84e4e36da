package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/modeltab/internal/pipeline"
)

func newConvertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Convert the input directory once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts)
		},
	}
}

func runConvert(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	log := newLogger(cfg, cmd.ErrOrStderr(), false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conv, err := pipeline.NewConverter(cfg, log, nil)
	if err != nil {
		return err
	}
	res, err := conv.Run(ctx)
	if errors.Is(err, pipeline.ErrNoInput) {
		fmt.Fprintln(cmd.OutOrStdout(), "No data to write.")
		return nil
	}
	if err != nil {
		log.Error("conversion failed", "error", err)
		return err
	}

	if res.Tables == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tables found in any input.")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", res.Files, res.Output)
	return nil
}
