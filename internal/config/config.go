package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/modeltab/internal/parser"
	"github.com/dgallion1/modeltab/internal/writer"
)

type Config struct {
	// Input discovery
	InputDir string   `yaml:"input_dir"`
	Patterns []string `yaml:"patterns"`

	// Output
	Output       string `yaml:"output"`
	Delimiter    string `yaml:"delimiter"`
	Encoding     string `yaml:"encoding"`
	Quoting      string `yaml:"quoting"`
	MaxFallbacks int    `yaml:"max_fallbacks"`

	// Decoding
	DecodePolicy  string `yaml:"decode_policy"`
	InputEncoding string `yaml:"input_encoding"`

	// Column holding the magnitude string that drives the size category.
	ParamColumn string `yaml:"param_column"`

	// File-level fan-out; 1 processes files sequentially.
	Workers int `yaml:"workers"`

	// HTTP service
	Port           string `yaml:"port"`
	APIKey         string `yaml:"api_key"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`

	// Watch mode
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// PDF
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InputDir:             ".",
		Patterns:             []string{"*.txt"},
		Output:               "models.csv",
		Delimiter:            ";",
		Encoding:             writer.EncodingUTF8BOM,
		Quoting:              string(writer.QuoteAll),
		MaxFallbacks:         100,
		DecodePolicy:         string(parser.PolicyDrop),
		InputEncoding:        "utf-8",
		ParamColumn:          "METADATA_PARAMETERS",
		Workers:              1,
		Port:                 "8090",
		MaxUploadBytes:       52428800, // 50MB
		WatchDebounce:        500 * time.Millisecond,
		PDFFallbackPdftotext: true,
		LogLevel:             "info",
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.InputDir = envOr("MODELTAB_INPUT_DIR", cfg.InputDir)
	cfg.Patterns = envList("MODELTAB_PATTERNS", cfg.Patterns)
	cfg.Output = envOr("MODELTAB_OUTPUT", cfg.Output)
	cfg.Delimiter = envOr("MODELTAB_DELIMITER", cfg.Delimiter)
	cfg.Encoding = envOr("MODELTAB_ENCODING", cfg.Encoding)
	cfg.Quoting = envOr("MODELTAB_QUOTING", cfg.Quoting)
	cfg.MaxFallbacks = envInt("MODELTAB_MAX_FALLBACKS", cfg.MaxFallbacks)
	cfg.DecodePolicy = envOr("MODELTAB_DECODE_POLICY", cfg.DecodePolicy)
	cfg.InputEncoding = envOr("MODELTAB_INPUT_ENCODING", cfg.InputEncoding)
	cfg.ParamColumn = envOr("MODELTAB_PARAM_COLUMN", cfg.ParamColumn)
	cfg.Workers = envInt("MODELTAB_WORKERS", cfg.Workers)
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("MODELTAB_API_KEY", cfg.APIKey)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.WatchDebounce = envDuration("MODELTAB_WATCH_DEBOUNCE", cfg.WatchDebounce)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)

	if cfg.MaxFallbacks < 0 {
		cfg.MaxFallbacks = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 500 * time.Millisecond
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []string{"*.txt"}
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := c.WriterOptions(); err != nil {
		return err
	}
	if _, err := parser.ParsePolicy(c.DecodePolicy); err != nil {
		return err
	}
	if c.ParamColumn == "" {
		return fmt.Errorf("param_column is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// WriterOptions converts the output settings.
func (c Config) WriterOptions() (writer.Options, error) {
	return writer.ParseOptions(c.Delimiter, c.Quoting, c.Encoding)
}

// ParserOptions converts the decoding settings. Call Validate first.
func (c Config) ParserOptions() parser.Options {
	policy, _ := parser.ParsePolicy(c.DecodePolicy)
	return parser.Options{
		Encoding:             c.InputEncoding,
		Policy:               policy,
		PDFFallbackPdftotext: c.PDFFallbackPdftotext,
	}
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
