package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LocalStorageClient writes plots below a local directory
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a new local storage client
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalStorageClient{baseDir: baseDir}, nil
}

// Close is a no-op for local storage
func (l *LocalStorageClient) Close() error {
	return nil
}

// StoreFile writes a plot into the folder for timestamp and returns its path
func (l *LocalStorageClient) StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid file name %q", filename)
	}

	filePath := filepath.Join(l.baseDir, filepath.FromSlash(GeneratePlotFolderPath(timestamp)), filename)

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(filePath, fileData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", filePath, err)
	}
	return filePath, nil
}

// ListPlots lists stored plots relative to the base directory, newest first
func (l *LocalStorageClient) ListPlots(ctx context.Context, limit int) ([]string, error) {
	var plots []string
	err := filepath.WalkDir(l.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(l.baseDir, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if isPlotFile(rel) {
			plots = append(plots, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk plot directory: %w", err)
	}
	return newestFirst(plots, limit), nil
}
