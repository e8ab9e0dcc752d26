package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/importcheck/pkg/config"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.Default().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mutate func(*config.Config)
		want   error
		name   string
	}{
		{name: "empty marker", mutate: func(c *config.Config) { c.Root.Marker = " " }, want: config.ErrEmptyMarker},
		{name: "absolute marker", mutate: func(c *config.Config) { c.Root.Marker = "/etc/passwd" }, want: config.ErrAbsoluteMarker},
		{name: "negative workers", mutate: func(c *config.Config) { c.Scan.Workers = -1 }, want: config.ErrInvalidWorkers},
		{name: "unknown format", mutate: func(c *config.Config) { c.Output.Format = "html" }, want: config.ErrInvalidFormat},
		{name: "unknown level", mutate: func(c *config.Config) { c.Logging.Level = "trace" }, want: config.ErrInvalidLogLevel},
		{name: "blank skip dir", mutate: func(c *config.Config) { c.Skip.Dirs = []string{""} }, want: config.ErrEmptyPattern},
		{name: "blank skip import", mutate: func(c *config.Config) { c.Skip.Imports = []string{"  "} }, want: config.ErrEmptyPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			tt.mutate(cfg)

			require.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestValidate_CaseInsensitiveNames(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Output.Format = "JSON"
	cfg.Logging.Level = "Info"

	assert.NoError(t, cfg.Validate())
}
