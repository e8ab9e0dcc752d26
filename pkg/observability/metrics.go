package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesScanned = "importcheck.files.scanned"
	metricDiagnostics  = "importcheck.diagnostics"
	metricRunDuration  = "importcheck.run.duration"

	attrLang   = "lang"
	attrRule   = "rule"
	attrStatus = "status"

	statusOK     = "ok"
	statusFailed = "failed"
)

// durationBucketBoundaries covers 10ms to 5 minutes.
var durationBucketBoundaries = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300}

// CheckMetrics holds the instruments recorded by a check run. A nil
// *CheckMetrics records nothing.
type CheckMetrics struct {
	filesScanned metric.Int64Counter
	diagnostics  metric.Int64Counter
	runDuration  metric.Float64Histogram
}

// NewCheckMetrics creates the check instruments from the given meter.
func NewCheckMetrics(mt metric.Meter) (*CheckMetrics, error) {
	b := &metricBuilder{meter: mt}

	cm := &CheckMetrics{
		filesScanned: b.counter(metricFilesScanned, "Number of source files scanned", "{file}"),
		diagnostics:  b.counter(metricDiagnostics, "Number of import diagnostics by rule", "{diagnostic}"),
		runDuration: b.histogram(metricRunDuration, "Duration of a full check run", "s",
			durationBucketBoundaries...),
	}

	if b.err != nil {
		return nil, b.err
	}

	return cm, nil
}

// metricBuilder keeps the first instrument creation error so a set of
// instruments can be built with a single check.
type metricBuilder struct {
	meter metric.Meter
	err   error
}

func (b *metricBuilder) counter(name, desc, unit string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.keep(name, err)

	return c
}

func (b *metricBuilder) histogram(name, desc, unit string, bounds ...float64) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name,
		metric.WithDescription(desc),
		metric.WithUnit(unit),
		metric.WithExplicitBucketBoundaries(bounds...),
	)
	b.keep(name, err)

	return h
}

func (b *metricBuilder) keep(name string, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("create %s: %w", name, err)
	}
}

// RecordFile counts one scanned file by detected language.
func (cm *CheckMetrics) RecordFile(ctx context.Context, lang string) {
	if cm == nil {
		return
	}

	cm.filesScanned.Add(ctx, 1, metric.WithAttributes(attribute.String(attrLang, lang)))
}

// RecordDiagnostic counts one diagnostic for the given rule.
func (cm *CheckMetrics) RecordDiagnostic(ctx context.Context, rule string) {
	if cm == nil {
		return
	}

	cm.diagnostics.Add(ctx, 1, metric.WithAttributes(attribute.String(attrRule, rule)))
}

// RecordRun records the duration and outcome of a full run.
func (cm *CheckMetrics) RecordRun(ctx context.Context, duration time.Duration, failed bool) {
	if cm == nil {
		return
	}

	status := statusOK
	if failed {
		status = statusFailed
	}

	cm.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String(attrStatus, status)))
}
