package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

// writeMetrics dumps the default registry to --metrics-file, for the node
// exporter textfile collector.
func writeMetrics(_ context.Context, cmd *cli.Command) error {
	path := cmd.String(flagMetricsFile)
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	slog.Debug("metrics written", "path", path)
	return nil
}
