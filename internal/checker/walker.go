// Package checker walks a repository and validates the import directives of
// its C-family source files.
package checker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/importcheck/pkg/observability"
)

// ErrListRoot is returned when the repository root cannot be listed. It is
// the only condition that aborts a run.
var ErrListRoot = errors.New("list repository root")

// Options configures a Checker.
type Options struct {
	// Logger receives progress logs. Nil discards them.
	Logger *slog.Logger
	// Tracer creates the run spans. Nil uses a no-op tracer.
	Tracer trace.Tracer
	// Metrics records run metrics. Nil records nothing.
	Metrics *observability.CheckMetrics
	// Root is the repository root to scan.
	Root string
	// SkipDirs extends DefaultSkipDirPatterns.
	SkipDirs []string
	// SkipImports extends DefaultSkipImportPatterns.
	SkipImports []string
	// Workers bounds concurrent file scans. Zero or less uses runtime.NumCPU.
	Workers int
}

// Checker runs the import check over one repository.
type Checker struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *observability.CheckMetrics
	filter  *PathFilter
	scanner *Scanner
	root    string
	workers int
}

// New creates a checker from opts.
func New(opts Options) *Checker {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer("importcheck")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Checker{
		logger:  logger,
		tracer:  tracer,
		metrics: opts.Metrics,
		filter:  NewPathFilter(opts.SkipDirs),
		scanner: NewScanner(NewEvaluator(opts.Root, opts.SkipImports)),
		root:    opts.Root,
		workers: workers,
	}
}

// Run scans the repository and returns the report. A non-nil error is either
// ErrListRoot, in which case the report also holds the matching diagnostic,
// or a context error.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	ctx, span := c.tracer.Start(ctx, "importcheck.run", trace.WithAttributes(attribute.String("root", c.root)))
	defer span.End()

	start := time.Now()
	report := NewReport(c.root)

	paths, err := c.discover(ctx)
	if err != nil {
		if errors.Is(err, ErrListRoot) {
			cause := err

			var pathErr *fs.PathError
			if errors.As(err, &pathErr) {
				cause = pathErr.Err
			}

			report.AddDiagnostic(Diagnostic{
				File:    c.root,
				Rule:    RuleRootListing,
				Message: fmt.Sprintf(msgRootListing, c.root, cause),
			})
		}

		span.RecordError(err)
		c.metrics.RecordRun(ctx, time.Since(start), true)

		return report, err
	}

	c.logger.DebugContext(ctx, "discovered source files", "root", c.root, "files", len(paths))

	results, err := c.scanAll(ctx, paths)
	if err != nil {
		span.RecordError(err)
		c.metrics.RecordRun(ctx, time.Since(start), true)

		return report, err
	}

	for _, res := range results {
		report.Add(res)
		c.record(ctx, res)
	}

	span.SetAttributes(
		attribute.Int("files", report.FilesScanned()),
		attribute.Int("files_with_errors", report.FilesWithErrors()),
	)
	c.metrics.RecordRun(ctx, time.Since(start), report.FoundError())

	return report, nil
}

// discover lists the root's child directories and collects every file that
// passes the path filter. Files directly in the root are not scanned.
func (c *Checker) discover(ctx context.Context) ([]string, error) {
	_, span := c.tracer.Start(ctx, "importcheck.discover")
	defer span.End()

	entries, err := os.ReadDir(c.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListRoot, err)
	}

	var paths []string

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		walkErr := filepath.WalkDir(filepath.Join(c.root, entry.Name()), func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			if err != nil {
				c.logger.DebugContext(ctx, "skipping unreadable entry", "path", path, "error", err)

				return nil
			}

			if d.IsDir() {
				return nil
			}

			if !d.Type().IsRegular() || !IsSourceFile(d.Name()) || c.filter.Skip(path) {
				return nil
			}

			paths = append(paths, path)

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk %s: %w", entry.Name(), walkErr)
		}
	}

	return paths, nil
}

// scanAll scans paths on a bounded worker pool. Results keep the order of paths.
func (c *Checker) scanAll(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = c.scanner.ScanFile(NewFileContext(path))

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, fmt.Errorf("scan files: %w", err)
	}

	return results, nil
}

func (c *Checker) record(ctx context.Context, res FileResult) {
	c.metrics.RecordFile(ctx, res.Lang)

	for _, d := range res.Diagnostics {
		c.metrics.RecordDiagnostic(ctx, string(d.Rule))
		c.logger.DebugContext(ctx, "import diagnostic", "file", d.File, "line", d.Line, "rule", d.Rule)
	}
}
