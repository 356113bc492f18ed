package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gitlab.com/tinyland/lab/port-pulse/collectors/procstat"
	"gitlab.com/tinyland/lab/port-pulse/config"
	"gitlab.com/tinyland/lab/port-pulse/insights"
	"gitlab.com/tinyland/lab/port-pulse/internal/format"
)

// runSnapshot measures the process once and prints a two-line summary.
// When insights are requested it appends an AI health assessment,
// falling back to the plain summary if the analysis is unavailable.
func runSnapshot(ctx context.Context, cfg *config.Config, sampler *procstat.Sampler, portNum uint16, pid int32, withInsights bool, logger *slog.Logger) error {
	sample, err := sampler.Sample(ctx)
	if err != nil {
		return fmt.Errorf("sampling process %d: %w", pid, err)
	}

	fmt.Printf("Port: %d | PID: %d | %s\n", portNum, pid, sampler.ProcessName())
	fmt.Printf("CPU: %s | Memory: %s\n", format.Percent(sample.CPUPercent), format.Bytes(sample.MemoryBytes))

	if !withInsights && !cfg.Insights.Enabled {
		return nil
	}

	client := insights.New(insights.Config{
		APIKey: os.Getenv(cfg.Insights.APIKeyEnv),
		Model:  cfg.Insights.Model,
		Logger: logger,
	})
	if !client.Enabled() {
		fmt.Fprintf(os.Stderr, "insight unavailable: %s is not set\n", cfg.Insights.APIKeyEnv)
		return nil
	}

	system, warnings := procstat.CollectSystem(ctx)
	for _, w := range warnings {
		logger.Warn("partial system snapshot", "detail", w)
	}

	text, err := client.Analyze(ctx, insights.Request{
		Port:        portNum,
		PID:         pid,
		ProcessName: sampler.ProcessName(),
		Sample:      sample,
		System:      system,
	})
	if err != nil {
		// The snapshot above already stands on its own.
		fmt.Fprintf(os.Stderr, "insight unavailable: %v\n", err)
		return nil
	}

	fmt.Printf("\n%s\n", text)
	return nil
}
