// Package config loads importcheck settings from a YAML file, the
// environment, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
)

// Output format names.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Log level names.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Sentinel validation errors.
var (
	ErrEmptyMarker     = errors.New("root marker must not be empty")
	ErrAbsoluteMarker  = errors.New("root marker must be relative to the repository root")
	ErrInvalidWorkers  = errors.New("scan workers must not be negative")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrEmptyPattern    = errors.New("skip patterns must not be empty")
)

// Config holds all importcheck settings.
type Config struct {
	Root      RootConfig      `mapstructure:"root"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Skip      SkipConfig      `mapstructure:"skip"`
	Scan      ScanConfig      `mapstructure:"scan"`
}

// RootConfig controls repository root discovery.
type RootConfig struct {
	// Marker is the slash-separated path, relative to the root, of the file
	// that identifies the repository root.
	Marker string `mapstructure:"marker"`
}

// ScanConfig controls the file scan.
type ScanConfig struct {
	Workers int `mapstructure:"workers"`
}

// SkipConfig extends the built-in skip tables. The built-in entries always apply.
type SkipConfig struct {
	Dirs    []string `mapstructure:"dirs"`
	Imports []string `mapstructure:"imports"`
}

// OutputConfig controls how diagnostics are printed.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	Color   bool   `mapstructure:"color"`
	Summary bool   `mapstructure:"summary"`
}

// LoggingConfig controls the diagnostic logger on stderr.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig controls OpenTelemetry export.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	MetricsFile  string `mapstructure:"metrics_file"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	marker := strings.TrimSpace(c.Root.Marker)
	if marker == "" {
		return ErrEmptyMarker
	}

	if path.IsAbs(marker) || strings.HasPrefix(marker, `\`) {
		return fmt.Errorf("%w: %s", ErrAbsoluteMarker, marker)
	}

	if c.Scan.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Scan.Workers)
	}

	if !slices.Contains([]string{FormatText, FormatJSON, FormatYAML, FormatTable}, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	if !slices.Contains([]string{LevelDebug, LevelInfo, LevelWarn, LevelError}, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	for _, p := range slices.Concat(c.Skip.Dirs, c.Skip.Imports) {
		if strings.TrimSpace(p) == "" {
			return ErrEmptyPattern
		}
	}

	return nil
}
