package models

import "encoding/xml"

// XML namespaces used by the request documents
const (
	SSCNamespace = "http://sscweb.gsfc.nasa.gov/schema"
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// DataRequest is the POST /locations body
type DataRequest struct {
	XMLName       xml.Name                 `xml:"http://sscweb.gsfc.nasa.gov/schema DataRequest"`
	TimeInterval  TimeInterval             `xml:"TimeInterval"`
	BFieldModel   BFieldModel              `xml:"BFieldModel"`
	Satellites    []SatelliteSpecification `xml:"Satellites"`
	OutputOptions OutputOptions            `xml:"OutputOptions"`
}

// GraphRequest is the POST /graphs body. GraphOptions holds one of
// OrbitGraphOptions, MapProjectionGraphOptions or TimeSeriesGraphOptions.
type GraphRequest struct {
	XMLName      xml.Name                 `xml:"http://sscweb.gsfc.nasa.gov/schema GraphRequest"`
	TimeInterval TimeInterval             `xml:"TimeInterval"`
	BFieldModel  BFieldModel              `xml:"BFieldModel"`
	Satellites   []SatelliteSpecification `xml:"Satellites"`
	GraphOptions interface{}              `xml:"GraphOptions"`
}

// TimeInterval holds canonical start and end times
type TimeInterval struct {
	Start string `xml:"Start"`
	End   string `xml:"End"`
}

// BFieldModel selects the magnetic field models used for tracing
type BFieldModel struct {
	InternalBFieldModel string              `xml:"InternalBFieldModel"`
	ExternalBFieldModel ExternalBFieldModel `xml:"ExternalBFieldModel"`
	TraceStopAltitude   int                 `xml:"TraceStopAltitude"`
}

// ExternalBFieldModel is polymorphic on the service side, hence xsi:type
type ExternalBFieldModel struct {
	XSI                string `xml:"xmlns:xsi,attr"`
	Type               string `xml:"xsi:type,attr"`
	KeyParameterValues string `xml:"KeyParameterValues"`
}

// SatelliteSpecification names one satellite in a request
type SatelliteSpecification struct {
	ID               string `xml:"Id"`
	ResolutionFactor int    `xml:"ResolutionFactor"`
}

// CoordinateOptions requests one component in one coordinate system
type CoordinateOptions struct {
	CoordinateSystem string `xml:"CoordinateSystem"`
	Component        string `xml:"Component"`
}

// OutputOptions describes the trajectory values a data request returns
type OutputOptions struct {
	AllLocationFilters bool                `xml:"AllLocationFilters"`
	CoordinateOptions  []CoordinateOptions `xml:"CoordinateOptions"`
	MinMaxPoints       int                 `xml:"MinMaxPoints"`
}

// OrbitGraphOptions renders orbit plots. Field order is the element order
// the service schema requires.
type OrbitGraphOptions struct {
	XMLName                  xml.Name `xml:"GraphOptions"`
	XSI                      string   `xml:"xmlns:xsi,attr"`
	Type                     string   `xml:"xsi:type,attr"`
	CoordinateSystem         string   `xml:"CoordinateSystem"`
	Combined                 bool     `xml:"Combined"`
	XyView                   bool     `xml:"XyView"`
	XzView                   bool     `xml:"XzView"`
	YzView                   bool     `xml:"YzView"`
	XrView                   bool     `xml:"XrView"`
	SunToRight               bool     `xml:"SunToRight"`
	EvenAxesScale            bool     `xml:"EvenAxesScale"`
	ShowBowShockMagnetopause bool     `xml:"ShowBowShockMagnetopause"`
	SolarWindPressure        float64  `xml:"SolarWindPressure"`
	ImfBz                    float64  `xml:"ImfBz"`
}

// MapProjectionGraphOptions renders footpoint map plots
type MapProjectionGraphOptions struct {
	XMLName               xml.Name  `xml:"GraphOptions"`
	XSI                   string    `xml:"xmlns:xsi,attr"`
	Type                  string    `xml:"xsi:type,attr"`
	Trace                 string    `xml:"Trace"`
	CoordinateSystem      string    `xml:"CoordinateSystem"`
	ShowContinents        bool      `xml:"ShowContinents"`
	Projection            string    `xml:"Projection"`
	GroundStations        []string  `xml:"GroundStations"`
	MapLimits             MapLimits `xml:"MapLimits"`
	PolarMapOrientation   string    `xml:"PolarMapOrientation"`
	LongitudeVerticalDown float64   `xml:"LongitudeVerticalDown"`
	Title                 string    `xml:"Title"`
}

// MapLimits bounds the map projection in degrees
type MapLimits struct {
	MinLatitude  float64 `xml:"MinLatitude"`
	MaxLatitude  float64 `xml:"MaxLatitude"`
	MinLongitude float64 `xml:"MinLongitude"`
	MaxLongitude float64 `xml:"MaxLongitude"`
}

// TimeSeriesGraphOptions renders time series plots
type TimeSeriesGraphOptions struct {
	XMLName             xml.Name            `xml:"GraphOptions"`
	XSI                 string              `xml:"xmlns:xsi,attr"`
	Type                string              `xml:"xsi:type,attr"`
	CoordinateOptions   []CoordinateOptions `xml:"CoordinateOptions"`
	ValueOptions        ValueOptions        `xml:"ValueOptions"`
	DistanceFromOptions DistanceFromOptions `xml:"DistanceFromOptions"`
	BFieldTraceOptions  BFieldTraceOptions  `xml:"BFieldTraceOptions"`
}

type ValueOptions struct {
	RadialDistance bool `xml:"RadialDistance"`
	BFieldStrength bool `xml:"BFieldStrength"`
	DipoleLValue   bool `xml:"DipoleLValue"`
	DipoleInvLat   bool `xml:"DipoleInvLat"`
}

type DistanceFromOptions struct {
	NeutralSheet bool `xml:"NeutralSheet"`
	BowShock     bool `xml:"BowShock"`
	MPause       bool `xml:"MPause"`
	BGseXYZ      bool `xml:"BGseXYZ"`
}

type BFieldTraceOptions struct {
	CoordinateSystem   string `xml:"CoordinateSystem"`
	Hemisphere         string `xml:"Hemisphere"`
	FootpointLatitude  bool   `xml:"FootpointLatitude"`
	FootpointLongitude bool   `xml:"FootpointLongitude"`
	FieldLineLength    bool   `xml:"FieldLineLength"`
}
