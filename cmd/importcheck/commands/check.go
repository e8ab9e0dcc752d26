// Package commands implements the importcheck CLI commands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/importcheck/internal/checker"
	"github.com/Sumatoshi-tech/importcheck/internal/render"
	"github.com/Sumatoshi-tech/importcheck/pkg/config"
	"github.com/Sumatoshi-tech/importcheck/pkg/observability"
	"github.com/Sumatoshi-tech/importcheck/pkg/version"
)

// ErrImportErrors is returned when the check recorded at least one
// diagnostic. The diagnostics themselves are already on stdout.
var ErrImportErrors = errors.New("import errors found")

type observabilityInit func(observability.Config) (observability.Providers, error)

type configLoader func(path string) (*config.Config, error)

// CheckCommand holds the flags and dependencies of the check run.
type CheckCommand struct {
	configPath  string
	dir         string
	root        string
	format      string
	metricsFile string
	workers     int
	noColor     bool
	summary     bool
	verbose     bool
	logJSON     bool

	initObservability observabilityInit
	loadConfig        configLoader
}

// NewRootCommand creates the root command. Running it without a subcommand
// checks the repository that contains the working directory.
func NewRootCommand() *cobra.Command {
	return newRootCommandWithDeps(observability.Init, config.LoadConfig)
}

func newRootCommandWithDeps(initFn observabilityInit, loadFn configLoader) *cobra.Command {
	cc := &CheckCommand{
		initObservability: initFn,
		loadConfig:        loadFn,
	}

	cobraCmd := &cobra.Command{
		Use:   "importcheck",
		Short: "Check #import and #include conventions of a C-family source tree",
		Long: `importcheck walks the repository that contains the working directory and
validates every #import, #include and @import line in .h, .m, .mm and .c files.

The repository root is the nearest parent directory holding the root marker
(scripts/check_imports.go by default). Each violation is printed as

  Import Error: <file>:<line> <message>

and the command exits with status 1 if anything was reported.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          cc.run,
	}

	flags := cobraCmd.Flags()
	flags.StringVar(&cc.configPath, "config", "", "config file (default .importcheck.yaml in CWD or $HOME)")
	flags.StringVar(&cc.dir, "dir", "", "directory to start the root search from (default CWD)")
	flags.StringVar(&cc.root, "root", "", "repository root, skips marker discovery")
	flags.StringVarP(&cc.format, "format", "f", "", "output format: text, json, yaml, table")
	flags.BoolVar(&cc.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&cc.summary, "summary", false, "print a summary line after the diagnostics")
	flags.IntVarP(&cc.workers, "workers", "j", 0, "concurrent file scans (0 = one per CPU)")
	flags.BoolVarP(&cc.verbose, "verbose", "v", false, "debug logging on stderr")
	flags.BoolVar(&cc.logJSON, "log-json", false, "log as JSON")
	flags.StringVar(&cc.metricsFile, "metrics-file", "", "write run metrics as a Prometheus textfile")

	return cobraCmd
}

func (cc *CheckCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := cc.loadConfig(cc.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cc.applyFlags(cmd, cfg)

	validateErr := cfg.Validate()
	if validateErr != nil {
		return fmt.Errorf("validate settings: %w", validateErr)
	}

	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	providers, err := cc.initObservability(observabilityConfig(cfg, cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.WithoutCancel(ctx))
		if shutdownErr != nil && providers.Logger != nil {
			providers.Logger.WarnContext(ctx, "telemetry shutdown failed", "error", shutdownErr)
		}
	}()

	root, err := cc.resolveRoot(cfg)
	if err != nil {
		return err
	}

	var metrics *observability.CheckMetrics

	if providers.Meter != nil {
		metrics, err = observability.NewCheckMetrics(providers.Meter)
		if err != nil {
			return fmt.Errorf("create metrics: %w", err)
		}
	}

	report, runErr := checker.New(checker.Options{
		Logger:      providers.Logger,
		Tracer:      providers.Tracer,
		Metrics:     metrics,
		Root:        root,
		SkipDirs:    cfg.Skip.Dirs,
		SkipImports: cfg.Skip.Imports,
		Workers:     cfg.Scan.Workers,
	}).Run(ctx)
	if runErr != nil && !errors.Is(runErr, checker.ErrListRoot) {
		return fmt.Errorf("check imports: %w", runErr)
	}

	out := cmd.OutOrStdout()

	renderErr := render.Report(out, report, render.Options{
		Format:  format,
		Color:   useColor(cfg, out),
		Summary: cfg.Output.Summary,
	})
	if renderErr != nil {
		return fmt.Errorf("render report: %w", renderErr)
	}

	if cfg.Telemetry.MetricsFile != "" {
		writeErr := observability.WriteTextfile(providers.Registry, cfg.Telemetry.MetricsFile)
		if writeErr != nil {
			return fmt.Errorf("write metrics: %w", writeErr)
		}
	}

	if runErr != nil {
		return fmt.Errorf("%w: %w", ErrImportErrors, runErr)
	}

	if report.FoundError() {
		return ErrImportErrors
	}

	return nil
}

// applyFlags lets explicitly set flags override file and env settings.
func (cc *CheckCommand) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Output.Format = cc.format
	}

	if cc.noColor {
		cfg.Output.Color = false
	}

	if cc.summary {
		cfg.Output.Summary = true
	}

	if flags.Changed("workers") {
		cfg.Scan.Workers = cc.workers
	}

	if cc.verbose {
		cfg.Logging.Level = config.LevelDebug
	}

	if cc.logJSON {
		cfg.Logging.JSON = true
	}

	if flags.Changed("metrics-file") {
		cfg.Telemetry.MetricsFile = cc.metricsFile
	}
}

func (cc *CheckCommand) resolveRoot(cfg *config.Config) (string, error) {
	if cc.root != "" {
		root, err := filepath.Abs(cc.root)
		if err != nil {
			return "", fmt.Errorf("resolve root %s: %w", cc.root, err)
		}

		return root, nil
	}

	start := cc.dir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}

		start = wd
	}

	root, err := checker.FindRoot(start, cfg.Root.Marker)
	if err != nil {
		return "", fmt.Errorf("find repository root: %w", err)
	}

	return root, nil
}

func observabilityConfig(cfg *config.Config, logOutput io.Writer) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.LogOutput = logOutput
	obsCfg.LogLevel = observability.ParseLevel(cfg.Logging.Level)
	obsCfg.LogJSON = cfg.Logging.JSON
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	obsCfg.Prometheus = cfg.Telemetry.MetricsFile != ""

	if os.Getenv("CI") != "" {
		obsCfg.Mode = observability.ModeCI
	}

	return obsCfg
}

// useColor enables color only for a terminal stdout that fatih/color has
// not disabled through NO_COLOR or TTY detection.
func useColor(cfg *config.Config, out io.Writer) bool {
	if !cfg.Output.Color {
		return false
	}

	f, ok := out.(*os.File)

	return ok && f == os.Stdout && !color.NoColor
}
