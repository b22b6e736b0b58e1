package storage

import (
	"context"
	"time"
)

// PlotSink stores downloaded plot files
type PlotSink interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a plot under the folder for timestamp and returns its location
	StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) (string, error)

	// ListPlots lists stored plots, newest first. A limit of zero lists all.
	ListPlots(ctx context.Context, limit int) ([]string, error)
}
