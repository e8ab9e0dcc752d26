package observability

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrNoRegistry is returned when metrics are written without a registry.
var ErrNoRegistry = errors.New("prometheus registry not initialized")

// WriteTextfile writes the gathered metrics in the Prometheus text format,
// suitable for the node_exporter textfile collector. The file is replaced
// atomically.
func WriteTextfile(registry *prometheus.Registry, path string) error {
	if registry == nil {
		return ErrNoRegistry
	}

	err := prometheus.WriteToTextfile(path, registry)
	if err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
