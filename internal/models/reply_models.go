package models

import "sscweb/internal/ssctime"

// TrajectoryRecord is one satellite's positions from a data reply. Positions
// are in Earth radii; Times, X, Y and Z always have equal lengths.
type TrajectoryRecord struct {
	SatelliteID      string          `json:"satellite_id"`
	SatelliteName    string          `json:"satellite_name"`
	CoordinateSystem string          `json:"coordinate_system"`
	Times            []ssctime.Value `json:"times"`
	X                []float64       `json:"x"`
	Y                []float64       `json:"y"`
	Z                []float64       `json:"z"`
}

// Len returns the number of samples in the record
func (r TrajectoryRecord) Len() int {
	return len(r.Times)
}

// PlotKind classifies a generated plot file
type PlotKind int

const (
	PlotImage PlotKind = iota
	PlotDocument
)

func (k PlotKind) String() string {
	switch k {
	case PlotImage:
		return "image"
	case PlotDocument:
		return "document"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name
func (k PlotKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// PlotFile is a URL of a generated plot
type PlotFile struct {
	URL  string   `json:"url"`
	Kind PlotKind `json:"kind"`
}

// PlotResult lists the files a graph request produced, in reply order
type PlotResult struct {
	Files []PlotFile `json:"files"`
}

// Images returns the URLs of image files
func (p PlotResult) Images() []string {
	return p.urls(PlotImage)
}

// Documents returns the URLs of document files
func (p PlotResult) Documents() []string {
	return p.urls(PlotDocument)
}

func (p PlotResult) urls(kind PlotKind) []string {
	var out []string
	for _, f := range p.Files {
		if f.Kind == kind {
			out = append(out, f.URL)
		}
	}
	return out
}
