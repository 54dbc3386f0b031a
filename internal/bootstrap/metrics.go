package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/squidword/squidword/config"
	"github.com/squidword/squidword/internal/observability/statsd"
)

// BuildMetrics returns the StatsD client. A disabled config yields a client
// that drops every metric, so callers never branch on nil.
func BuildMetrics(ctx context.Context, cfg config.MetricsConfig, logger *slog.Logger) (*statsd.Client, error) {
	client, err := statsd.NewClient(ctx, statsd.Config{
		Enabled: cfg.IsEnabled(),
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}
	if logger != nil && client.Enabled() {
		logger.InfoContext(ctx, "statsd metrics enabled", "addr", cfg.StatsdAddress, "prefix", cfg.Prefix)
	}
	return client, nil
}
