package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"sscweb/internal/logger"
)

// GCSClient stores plots in a Google Cloud Storage bucket
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a new GCS client using application default credentials
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("GCS bucket name is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.Component("storage"),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// ObjectPath returns the object name a plot is stored under
func ObjectPath(filename string, timestamp time.Time) string {
	return GeneratePlotFolderPath(timestamp) + "/" + filename
}

// StoreFile uploads a plot and returns its gs:// URL
func (g *GCSClient) StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) (string, error) {
	objectPath := ObjectPath(filename, timestamp)
	location := fmt.Sprintf("gs://%s/%s", g.bucket, objectPath)

	g.log.Info("Storing plot", logger.Fields{"location": location, "bytes": len(fileData)})

	writer := g.client.Bucket(g.bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = GetContentType(filename)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"downloaded-at": timestamp.UTC().Format(time.RFC3339),
		"filename":      filename,
	}

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}
	return location, nil
}

// ListPlots lists stored plot objects, newest first
func (g *GCSClient) ListPlots(ctx context.Context, limit int) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{})

	var plots []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if isPlotFile(attrs.Name) {
			plots = append(plots, attrs.Name)
		}
	}
	return newestFirst(plots, limit), nil
}
