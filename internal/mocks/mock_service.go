package mocks

import (
	"embed"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"math"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"sscweb/internal/catalog"
	"sscweb/internal/logger"
	"sscweb/internal/models"
	"sscweb/internal/ssctime"
)

//go:embed data
var embedded embed.FS

// samplesPerSatellite is the number of positions generated per satellite
const samplesPerSatellite = 5

// MockService answers SSC requests from canned fixtures so the client can
// run without network access
type MockService struct {
	files   fs.FS
	log     *logger.Logger
	catalog *catalog.Catalog
	plots   atomic.Int64
}

// NewMockService creates a mock service backed by the embedded fixtures
func NewMockService() (*MockService, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded mock data: %w", err)
	}
	return NewMockServiceFS(sub)
}

// NewMockServiceFS creates a mock service reading fixtures from files
func NewMockServiceFS(files fs.FS) (*MockService, error) {
	m := &MockService{files: files, log: logger.Component("mocks")}
	body, err := m.LoadObservatories()
	if err != nil {
		return nil, err
	}
	c, err := catalog.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("invalid mock observatories: %w", err)
	}
	m.catalog = c
	return m, nil
}

// LoadObservatories returns the raw observatory fixture
func (m *MockService) LoadObservatories() ([]byte, error) {
	return m.read("observatories.json")
}

// LoadGroundStations returns the raw ground station fixture
func (m *MockService) LoadGroundStations() ([]byte, error) {
	return m.read("ground_stations.json")
}

func (m *MockService) read(name string) ([]byte, error) {
	content, err := fs.ReadFile(m.files, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read mock %s: %w", name, err)
	}
	return content, nil
}

// Handler serves the service endpoints relative to the root path
func (m *MockService) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /observatories", m.serveFixture("observatories.json"))
	mux.HandleFunc("GET /groundStations", m.serveFixture("ground_stations.json"))
	mux.HandleFunc("POST /locations", m.handleLocations)
	mux.HandleFunc("POST /graphs", m.handleGraphs)
	mux.HandleFunc("GET /tmp/{file}", m.handlePlotFile)
	return mux
}

// NewHandler returns the handler of an embedded-fixture mock service
func NewHandler() (http.Handler, error) {
	m, err := NewMockService()
	if err != nil {
		return nil, err
	}
	return m.Handler(), nil
}

// NewServer starts a local HTTP server answering like the SSC service. Its
// URL is usable as a fetcher base URL. The caller must Close it.
func NewServer() (*httptest.Server, error) {
	h, err := NewHandler()
	if err != nil {
		return nil, err
	}
	return httptest.NewServer(h), nil
}

func (m *MockService) serveFixture(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := m.read(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

type mockRequest struct {
	XMLName      xml.Name
	TimeInterval struct {
		Start string `xml:"Start"`
		End   string `xml:"End"`
	} `xml:"TimeInterval"`
	Satellites []struct {
		ID string `xml:"Id"`
	} `xml:"Satellites"`
	GraphOptions struct {
		Type string `xml:"http://www.w3.org/2001/XMLSchema-instance type,attr"`
	} `xml:"GraphOptions"`
}

type mockResponse struct {
	XMLName xml.Name   `xml:"http://sscweb.gsfc.nasa.gov/schema Response"`
	Result  mockResult `xml:"Result"`
}

type mockResult struct {
	StatusCode    string     `xml:"StatusCode"`
	StatusSubCode string     `xml:"StatusSubCode"`
	StatusText    string     `xml:"StatusText,omitempty"`
	Data          []mockData `xml:"Data,omitempty"`
	Files         []string   `xml:"Files>Name,omitempty"`
}

type mockData struct {
	ID          string          `xml:"Id"`
	Coordinates mockCoordinates `xml:"Coordinates"`
	Time        []string        `xml:"Time"`
}

type mockCoordinates struct {
	CoordinateSystem string    `xml:"CoordinateSystem"`
	X                []float64 `xml:"X"`
	Y                []float64 `xml:"Y"`
	Z                []float64 `xml:"Z"`
}

func (m *MockService) decodeRequest(w http.ResponseWriter, r *http.Request) (*mockRequest, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request", http.StatusBadRequest)
		return nil, false
	}
	var req mockRequest
	if err := xml.Unmarshal(body, &req); err != nil {
		http.Error(w, "malformed request: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if req.XMLName.Space != models.SSCNamespace {
		http.Error(w, "request is not in the SSC namespace", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

// validate returns a non-success result for requests the service would refuse
func (m *MockService) validate(req *mockRequest) (ssctime.Value, ssctime.Value, *mockResult) {
	start, err := ssctime.ParseServiceTime(req.TimeInterval.Start)
	if err != nil {
		return start, start, &mockResult{StatusCode: "Error", StatusSubCode: "InvalidTimeInterval", StatusText: err.Error()}
	}
	end, err := ssctime.ParseServiceTime(req.TimeInterval.End)
	if err != nil {
		return start, end, &mockResult{StatusCode: "Error", StatusSubCode: "InvalidTimeInterval", StatusText: err.Error()}
	}
	if len(req.Satellites) == 0 {
		return start, end, &mockResult{StatusCode: "Error", StatusSubCode: "MissingSatellites", StatusText: "no satellites requested"}
	}
	for _, sat := range req.Satellites {
		if _, ok := m.catalog.Lookup(sat.ID); !ok {
			return start, end, &mockResult{
				StatusCode:    "Error",
				StatusSubCode: "InvalidSatellite",
				StatusText:    fmt.Sprintf("unknown satellite %s", sat.ID),
			}
		}
	}
	return start, end, nil
}

func (m *MockService) handleLocations(w http.ResponseWriter, r *http.Request) {
	req, ok := m.decodeRequest(w, r)
	if !ok {
		return
	}
	start, end, failure := m.validate(req)
	if failure != nil {
		m.writeXML(w, *failure)
		return
	}

	result := mockResult{StatusCode: "Success", StatusSubCode: "Success"}
	for i, sat := range req.Satellites {
		result.Data = append(result.Data, trajectory(sat.ID, i, start.Time(), end.Time()))
	}
	m.log.Debug("Served locations", logger.Fields{"satellites": len(req.Satellites)})
	m.writeXML(w, result)
}

// trajectory generates a circular equatorial orbit whose radius grows with
// the satellite's position in the request
func trajectory(id string, index int, start, end time.Time) mockData {
	d := mockData{ID: id, Coordinates: mockCoordinates{CoordinateSystem: "Gse"}}
	radiusKm := float64(6+index) * 6378.0
	step := end.Sub(start) / (samplesPerSatellite - 1)
	for k := 0; k < samplesPerSatellite; k++ {
		angle := 2 * math.Pi * float64(k) / samplesPerSatellite
		d.Time = append(d.Time, ssctime.FromTime(start.Add(time.Duration(k)*step)).String())
		d.Coordinates.X = append(d.Coordinates.X, math.Round(radiusKm*math.Cos(angle)*1000)/1000)
		d.Coordinates.Y = append(d.Coordinates.Y, math.Round(radiusKm*math.Sin(angle)*1000)/1000)
		d.Coordinates.Z = append(d.Coordinates.Z, float64(k)*637.8)
	}
	return d
}

var plotNames = map[string]string{
	"OrbitGraphOptions":         "orbit",
	"MapProjectionGraphOptions": "map",
	"TimeSeriesGraphOptions":    "timeseries",
}

func (m *MockService) handleGraphs(w http.ResponseWriter, r *http.Request) {
	req, ok := m.decodeRequest(w, r)
	if !ok {
		return
	}
	if _, _, failure := m.validate(req); failure != nil {
		m.writeXML(w, *failure)
		return
	}
	name, ok := plotNames[req.GraphOptions.Type]
	if !ok {
		m.writeXML(w, mockResult{
			StatusCode:    "Error",
			StatusSubCode: "InvalidGraphOptions",
			StatusText:    fmt.Sprintf("unsupported graph options %q", req.GraphOptions.Type),
		})
		return
	}

	n := m.plots.Add(1)
	base := fmt.Sprintf("http://%s/tmp/ssc_%s_%d", r.Host, name, n)
	m.writeXML(w, mockResult{
		StatusCode:    "Success",
		StatusSubCode: "Success",
		Files:         []string{base + ".gif", base + ".pdf"},
	})
}

func (m *MockService) handlePlotFile(w http.ResponseWriter, r *http.Request) {
	var fixture, contentType string
	switch strings.ToLower(path.Ext(r.PathValue("file"))) {
	case ".gif":
		fixture, contentType = "plot.gif", "image/gif"
	case ".pdf":
		fixture, contentType = "plot.pdf", "application/pdf"
	default:
		http.NotFound(w, r)
		return
	}
	body, err := m.read(fixture)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}

func (m *MockService) writeXML(w http.ResponseWriter, result mockResult) {
	body, err := xml.Marshal(mockResponse{Result: result})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	_, _ = io.WriteString(w, xml.Header)
	_, _ = w.Write(body)
}
