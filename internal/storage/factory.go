package storage

import (
	"context"
	"fmt"

	"sscweb/internal/config"
)

// OutputMode selects where downloaded plots are written
type OutputMode string

const (
	OutputLocal OutputMode = config.OutputLocal
	OutputGCS   OutputMode = config.OutputGCS
)

// NewPlotSink creates a sink based on the configured output mode
func NewPlotSink(ctx context.Context, cfg *config.Config) (PlotSink, error) {
	switch OutputMode(cfg.OutputMode) {
	case OutputLocal, "":
		dir := cfg.LocalOutputDir
		if dir == "" {
			dir = "plots"
		}
		localClient, err := NewLocalStorageClient(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case OutputGCS:
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported output mode: %s", cfg.OutputMode)
	}
}
