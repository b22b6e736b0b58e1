package storage

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"
)

// plotFolderPrefix starts every folder name so listings can find them
const plotFolderPrefix = "SSCPlots-"

// GeneratePlotFolderPath generates a consistent folder path for one download batch
// Format: YYYY/MM/DD/SSCPlots-YYYY-MM-DD-HH-MM-SS
func GeneratePlotFolderPath(timestamp time.Time) string {
	t := timestamp.UTC()
	return fmt.Sprintf("%04d/%02d/%02d/%s%04d-%02d-%02d-%02d-%02d-%02d",
		t.Year(), t.Month(), t.Day(), plotFolderPrefix,
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second())
}

// FileNameFromURL returns the last path element of a plot URL
func FileNameFromURL(fileURL string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("invalid plot URL %q: %w", fileURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("plot URL %q has no file name", fileURL)
	}
	return name, nil
}

var contentTypes = map[string]string{
	".gif":  "image/gif",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".pdf":  "application/pdf",
	".ps":   "application/postscript",
	".eps":  "application/postscript",
	".json": "application/json",
	".xml":  "application/xml",
	".txt":  "text/plain",
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// isPlotFile reports whether name looks like a stored plot
func isPlotFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".gif", ".png", ".jpg", ".jpeg", ".pdf", ".ps", ".eps":
		return strings.Contains(name, plotFolderPrefix)
	}
	return false
}

// newestFirst sorts paths in reverse lexical order and applies limit.
// Folder names embed the timestamp, so lexical order is chronological.
func newestFirst(paths []string, limit int) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}
