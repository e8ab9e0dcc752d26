package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/importcheck/pkg/observability"
)

func TestInit_NoopWhenNoEndpoint(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Logger)
	assert.Nil(t, providers.Registry)

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInit_NoopSpanIsUsable(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	ctx, span := providers.Tracer.Start(context.Background(), "importcheck.run")
	defer span.End()

	assert.NotNil(t, ctx)
}

func TestInit_LoggerWritesToConfiguredOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogOutput = &buf
	cfg.LogLevel = slog.LevelDebug
	cfg.LogJSON = true

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	providers.Logger.Debug("root found", "root", "/repo")

	assert.Contains(t, buf.String(), `"root":"/repo"`)
	assert.Contains(t, buf.String(), `"service":"importcheck"`)
}

func TestInit_PrometheusRegistryCollectsCheckMetrics(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.Prometheus = true

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	require.NotNil(t, providers.Registry)

	cm, err := observability.NewCheckMetrics(providers.Meter)
	require.NoError(t, err)

	cm.RecordFile(context.Background(), "Objective-C")

	families, err := providers.Registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}

	assert.Contains(t, names, "importcheck_files_scanned_total")

	path := filepath.Join(t.TempDir(), "importcheck.prom")
	require.NoError(t, observability.WriteTextfile(providers.Registry, path))
	assert.FileExists(t, path)
}

func TestWriteTextfile_NilRegistry(t *testing.T) {
	t.Parallel()

	err := observability.WriteTextfile(nil, filepath.Join(t.TempDir(), "x.prom"))
	require.ErrorIs(t, err, observability.ErrNoRegistry)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, observability.ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, observability.ParseLevel("ERROR"))
	assert.Equal(t, slog.LevelWarn, observability.ParseLevel("nonsense"))
}

func TestParseOTLPHeaders(t *testing.T) {
	t.Parallel()

	assert.Nil(t, observability.ParseOTLPHeaders(""))
	assert.Nil(t, observability.ParseOTLPHeaders("junk"))
	assert.Equal(t,
		map[string]string{"api-key": "secret", "tenant": "ios"},
		observability.ParseOTLPHeaders(" api-key = secret ,tenant=ios,=x"),
	)
}
