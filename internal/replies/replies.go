// Package replies interprets XML replies from the locations and graphs
// endpoints.
package replies

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"sscweb/internal/catalog"
	"sscweb/internal/models"
	"sscweb/internal/ssctime"
)

// EarthRadiusKm converts the service's kilometre positions to Earth radii
const EarthRadiusKm = 6378.0

// StatusSuccess is the only StatusCode that carries usable results
const StatusSuccess = "Success"

// ParseError reports a reply that is not in the expected shape
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid reply: %s: %v", e.Reason, e.Err)
	}
	return "invalid reply: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ServiceStatusError reports a well-formed reply whose status is not Success
type ServiceStatusError struct {
	StatusCode string
	SubCode    string
	Text       string
}

func (e *ServiceStatusError) Error() string {
	msg := fmt.Sprintf("service returned status %q", e.StatusCode)
	if e.SubCode != "" {
		msg += fmt.Sprintf(" (%s)", e.SubCode)
	}
	if e.Text != "" {
		msg += ": " + e.Text
	}
	return msg
}

// UnknownSatelliteError reports reply data for an id the catalog lacks
type UnknownSatelliteError struct {
	ID string
}

func (e *UnknownSatelliteError) Error() string {
	return fmt.Sprintf("reply contains data for unknown satellite %q", e.ID)
}

func checkStatus(root *node) error {
	code, _ := root.textOf("StatusCode")
	if code == StatusSuccess {
		return nil
	}
	subCode, _ := root.textOf("StatusSubCode")
	text, _ := root.textOf("StatusText")
	return &ServiceStatusError{StatusCode: code, SubCode: subCode, Text: text}
}

// ParseTrajectories turns a data reply into one record per Data element, in
// reply order. Positions are converted from kilometres to Earth radii and
// names are resolved through c.
func ParseTrajectories(data []byte, c *catalog.Catalog) ([]models.TrajectoryRecord, error) {
	root, err := parseTree(data)
	if err != nil {
		return nil, &ParseError{Reason: "malformed XML", Err: err}
	}
	if err := checkStatus(root); err != nil {
		return nil, err
	}

	var records []models.TrajectoryRecord
	for i, d := range root.find("Data") {
		rec, err := parseData(d, c)
		if err != nil {
			return nil, fmt.Errorf("data element %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseData(d *node, c *catalog.Catalog) (models.TrajectoryRecord, error) {
	id, ok := d.textOf("Id")
	if !ok || id == "" {
		return models.TrajectoryRecord{}, &ParseError{Reason: "Data element has no Id"}
	}
	obs, err := c.ByID(id)
	if err != nil {
		return models.TrajectoryRecord{}, &UnknownSatelliteError{ID: id}
	}
	coordSystem, _ := d.textOf("CoordinateSystem")

	timeNodes := d.find("Time")
	times := make([]ssctime.Value, 0, len(timeNodes))
	for _, n := range timeNodes {
		v, err := ssctime.ParseServiceTime(n.text())
		if err != nil {
			return models.TrajectoryRecord{}, &ParseError{Reason: "bad Time for " + id, Err: err}
		}
		times = append(times, v)
	}

	x, err := radii(d, "X", id)
	if err != nil {
		return models.TrajectoryRecord{}, err
	}
	y, err := radii(d, "Y", id)
	if err != nil {
		return models.TrajectoryRecord{}, err
	}
	z, err := radii(d, "Z", id)
	if err != nil {
		return models.TrajectoryRecord{}, err
	}

	if len(x) != len(times) || len(y) != len(times) || len(z) != len(times) {
		return models.TrajectoryRecord{}, &ParseError{Reason: fmt.Sprintf(
			"length mismatch for %s: %d times, %d x, %d y, %d z", id, len(times), len(x), len(y), len(z))}
	}

	return models.TrajectoryRecord{
		SatelliteID:      id,
		SatelliteName:    obs.Name,
		CoordinateSystem: coordSystem,
		Times:            times,
		X:                x,
		Y:                y,
		Z:                z,
	}, nil
}

func radii(d *node, component, id string) ([]float64, error) {
	nodes := d.find(component)
	out := make([]float64, 0, len(nodes))
	for _, n := range nodes {
		km, err := strconv.ParseFloat(n.text(), 64)
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("bad %s for %s", component, id), Err: err}
		}
		out = append(out, km/EarthRadiusKm)
	}
	return out, nil
}

var plotKinds = map[string]models.PlotKind{
	".gif":  models.PlotImage,
	".png":  models.PlotImage,
	".jpg":  models.PlotImage,
	".jpeg": models.PlotImage,
	".pdf":  models.PlotDocument,
	".ps":   models.PlotDocument,
	".eps":  models.PlotDocument,
}

// ClassifyURL reports whether a plot URL names an image or a document. The
// extension is taken from the URL path, ignoring query and case.
func ClassifyURL(fileURL string) (models.PlotKind, bool) {
	p := fileURL
	if u, err := url.Parse(fileURL); err == nil {
		p = u.Path
	}
	kind, ok := plotKinds[strings.ToLower(path.Ext(p))]
	return kind, ok
}

// ParsePlotURLs collects the file URLs named in a graph reply, in reply
// order. URLs with an unrecognized extension are omitted.
func ParsePlotURLs(data []byte) (models.PlotResult, error) {
	root, err := parseTree(data)
	if err != nil {
		return models.PlotResult{}, &ParseError{Reason: "malformed XML", Err: err}
	}
	if root.first("StatusCode") != nil {
		if err := checkStatus(root); err != nil {
			return models.PlotResult{}, err
		}
	}

	var result models.PlotResult
	for _, n := range root.find("Name") {
		u := n.text()
		if kind, ok := ClassifyURL(u); ok {
			result.Files = append(result.Files, models.PlotFile{URL: u, Kind: kind})
		}
	}
	return result, nil
}
