package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/modeltab/internal/config"
)

// options holds the command-line overrides shared by every subcommand.
type options struct {
	configPath string
	dir        string
	patterns   []string
	output     string
	delimiter  string
	encoding   string
	quoting    string
	policy     string
	workers    int
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "modeltab",
		Short: "Convert model-spec ASCII tables into one spreadsheet",
		Long: `modeltab scans a directory of model-specification reports, extracts the
ASCII tables they contain and writes one row per report to a delimited file,
with a MODEL_SIZE_CATEGORY column derived from the parameter count.

Running modeltab without a subcommand is the same as "modeltab convert".`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&opts.dir, "dir", "d", "", "input directory (default .)")
	pf.StringSliceVarP(&opts.patterns, "pattern", "p", nil, "input glob, repeatable (default *.txt)")
	pf.StringVarP(&opts.output, "output", "o", "", "output file, relative to the input directory (default models.csv)")
	pf.StringVar(&opts.delimiter, "delimiter", "", `field separator, e.g. ";" "," or "tab"`)
	pf.StringVar(&opts.encoding, "encoding", "", "output encoding (utf-8-sig, utf-8, windows-1252, ...)")
	pf.StringVar(&opts.quoting, "quoting", "", "quote all fields or only where needed (all|minimal)")
	pf.StringVar(&opts.policy, "decode-policy", "", "invalid input bytes: drop|replace|strict")
	pf.IntVarP(&opts.workers, "workers", "w", 0, "files processed in parallel")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newConvertCmd(opts),
		newServeCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

// loadConfig layers the command-line flags over the file and environment config.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.InputDir = opts.dir
	}
	if flags.Changed("pattern") {
		cfg.Patterns = opts.patterns
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter = opts.delimiter
	}
	if flags.Changed("encoding") {
		cfg.Encoding = opts.encoding
	}
	if flags.Changed("quoting") {
		cfg.Quoting = opts.quoting
	}
	if flags.Changed("decode-policy") {
		cfg.DecodePolicy = opts.policy
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger returns a JSON logger for the service and a text logger otherwise.
func newLogger(cfg config.Config, w io.Writer, asJSON bool) *slog.Logger {
	level, _ := cfg.SlogLevel()
	hopts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}
