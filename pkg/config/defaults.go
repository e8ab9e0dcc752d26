package config

// Root discovery defaults.
const (
	DefaultRootMarker = "scripts/check_imports.go"
)

// Scan defaults. Zero workers means one per CPU.
const (
	DefaultScanWorkers = 0
)

// Output defaults.
const (
	DefaultOutputFormat  = FormatText
	DefaultOutputColor   = true
	DefaultOutputSummary = false
)

// Logging defaults.
const (
	DefaultLoggingLevel = LevelWarn
	DefaultLoggingJSON  = false
)

// Telemetry defaults.
const (
	DefaultTelemetryOTLPEndpoint = ""
	DefaultTelemetryOTLPInsecure = false
	DefaultTelemetryMetricsFile  = ""
)
