// Package requests validates user selections against the catalog and builds
// the XML request documents submitted to the service.
package requests

import (
	"fmt"
	"strings"

	"sscweb/internal/models"
	"sscweb/internal/ssctime"
)

// Kind selects the endpoint a request is submitted to
type Kind int

const (
	KindGraph Kind = iota
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindGraph:
		return "graph"
	case KindData:
		return "data"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Path returns the endpoint path relative to the service base URL
func (k Kind) Path() string {
	if k == KindData {
		return "/locations"
	}
	return "/graphs"
}

// Interval is a requested time range
type Interval struct {
	Start ssctime.Value
	End   ssctime.Value
}

// ParseInterval parses user supplied start and end strings
func ParseInterval(start, end string) (Interval, error) {
	s, err := ssctime.Parse(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ssctime.Parse(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

// Spec is a validated-on-build description of one request
type Spec struct {
	Kind         Kind
	Interval     Interval
	SatelliteIDs []string
	// Variant is required for KindGraph and ignored for KindData
	Variant GraphVariant
}

// NewDataSpec describes a trajectory data request
func NewDataSpec(interval Interval, satelliteIDs []string) Spec {
	return Spec{Kind: KindData, Interval: interval, SatelliteIDs: satelliteIDs}
}

// NewGraphSpec describes a plot request
func NewGraphSpec(interval Interval, satelliteIDs []string, variant GraphVariant) Spec {
	return Spec{Kind: KindGraph, Interval: interval, SatelliteIDs: satelliteIDs, Variant: variant}
}

// GraphVariant is one of Orbit, Mapped or TimeSeries
type GraphVariant interface {
	// Name is the command line name of the variant
	Name() string
	graphOptions() interface{}
}

// Orbit requests orbit plots in GSE with every view enabled
type Orbit struct{}

// Mapped requests a cylindrical map of north footpoint traces
type Mapped struct {
	GroundStations []string
	Title          string
}

// TimeSeries requests position, field and distance time series
type TimeSeries struct{}

// DefaultGroundStations are plotted by Mapped when none are given
var DefaultGroundStations = []string{"FSMI", "WHOR", "FSIM", "GAK"}

// DefaultMapped returns the Mapped variant with the default ground stations
func DefaultMapped() Mapped {
	stations := make([]string, len(DefaultGroundStations))
	copy(stations, DefaultGroundStations)
	return Mapped{GroundStations: stations}
}

func (Orbit) Name() string      { return "orbit" }
func (Mapped) Name() string     { return "mapped" }
func (TimeSeries) Name() string { return "timeseries" }

// ParseVariant maps a command line name to its variant
func ParseVariant(name string) (GraphVariant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "orbit", "":
		return Orbit{}, nil
	case "mapped", "map":
		return DefaultMapped(), nil
	case "timeseries", "time-series", "time_series":
		return TimeSeries{}, nil
	default:
		return nil, fmt.Errorf("unknown graph variant %q: expected orbit, mapped or timeseries", name)
	}
}

func (Orbit) graphOptions() interface{} {
	return models.OrbitGraphOptions{
		XSI:                      models.XSINamespace,
		Type:                     "OrbitGraphOptions",
		CoordinateSystem:         "Gse",
		Combined:                 true,
		XyView:                   true,
		XzView:                   true,
		YzView:                   true,
		XrView:                   true,
		SunToRight:               false,
		EvenAxesScale:            false,
		ShowBowShockMagnetopause: true,
		SolarWindPressure:        2.1,
		ImfBz:                    0.0,
	}
}

func (m Mapped) graphOptions() interface{} {
	stations := m.GroundStations
	if len(stations) == 0 {
		stations = DefaultGroundStations
	}
	return models.MapProjectionGraphOptions{
		XSI:              models.XSINamespace,
		Type:             "MapProjectionGraphOptions",
		Trace:            "BFieldNorth",
		CoordinateSystem: "Geo",
		ShowContinents:   true,
		Projection:       "Cylindrical",
		GroundStations:   stations,
		MapLimits: models.MapLimits{
			MinLatitude:  -90.0,
			MaxLatitude:  90.0,
			MinLongitude: -180.0,
			MaxLongitude: 180.0,
		},
		PolarMapOrientation:   "Equatorial",
		LongitudeVerticalDown: 0.0,
		Title:                 m.Title,
	}
}

func (TimeSeries) graphOptions() interface{} {
	return models.TimeSeriesGraphOptions{
		XSI:               models.XSINamespace,
		Type:              "TimeSeriesGraphOptions",
		CoordinateOptions: gseComponents(),
		ValueOptions: models.ValueOptions{
			RadialDistance: true,
			BFieldStrength: true,
			DipoleLValue:   true,
			DipoleInvLat:   true,
		},
		DistanceFromOptions: models.DistanceFromOptions{
			NeutralSheet: true,
			BowShock:     true,
			MPause:       true,
			BGseXYZ:      true,
		},
		BFieldTraceOptions: models.BFieldTraceOptions{
			CoordinateSystem:   "Geo",
			Hemisphere:         "North",
			FootpointLatitude:  true,
			FootpointLongitude: true,
			FieldLineLength:    true,
		},
	}
}

func gseComponents() []models.CoordinateOptions {
	return []models.CoordinateOptions{
		{CoordinateSystem: "Gse", Component: "X"},
		{CoordinateSystem: "Gse", Component: "Y"},
		{CoordinateSystem: "Gse", Component: "Z"},
	}
}
