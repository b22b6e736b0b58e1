package mocks

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sscweb/internal/catalog"
)

func newTestService(t *testing.T) *MockService {
	t.Helper()
	m, err := NewMockService()
	if err != nil {
		t.Fatalf("NewMockService failed: %v", err)
	}
	return m
}

func TestFixturesDecode(t *testing.T) {
	m := newTestService(t)

	if m.catalog.Len() == 0 {
		t.Fatal("Expected observatories in fixture catalog")
	}
	if m.catalog.Dropped() != 1 {
		t.Errorf("Expected the duplicate GOES 13 entry to be dropped, got %d", m.catalog.Dropped())
	}

	body, err := m.LoadGroundStations()
	if err != nil {
		t.Fatalf("LoadGroundStations failed: %v", err)
	}
	stations, err := catalog.DecodeGroundStations(body)
	if err != nil {
		t.Fatalf("DecodeGroundStations failed: %v", err)
	}
	want := map[string]bool{"FSMI": true, "WHOR": true, "FSIM": true, "GAK": true}
	for _, s := range stations {
		delete(want, s.ID)
	}
	if len(want) != 0 {
		t.Errorf("Expected default mapped ground stations in fixture, missing %v", want)
	}
}

func post(t *testing.T, h http.Handler, path, body string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Host = "mock.local"
	h.ServeHTTP(rec, req)
	out, _ := io.ReadAll(rec.Body)
	return rec.Code, string(out)
}

const locationsRequest = `<?xml version="1.0" encoding="UTF-8"?>
<DataRequest xmlns="http://sscweb.gsfc.nasa.gov/schema">
  <TimeInterval><Start>2008-01-02T00:00:00.000Z</Start><End>2008-01-03T00:00:00.000Z</End></TimeInterval>
  <Satellites><Id>themisa</Id><ResolutionFactor>2</ResolutionFactor></Satellites>
  <Satellites><Id>ace</Id><ResolutionFactor>2</ResolutionFactor></Satellites>
</DataRequest>`

func TestLocations(t *testing.T) {
	h := newTestService(t).Handler()

	code, body := post(t, h, "/locations", locationsRequest)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", code, body)
	}
	if !strings.Contains(body, "<StatusCode>Success</StatusCode>") {
		t.Errorf("Expected success status, got %s", body)
	}
	first := strings.Index(body, "<Id>themisa</Id>")
	second := strings.Index(body, "<Id>ace</Id>")
	if first < 0 || second < 0 || first > second {
		t.Errorf("Expected one Data element per satellite in request order, got %s", body)
	}
	if strings.Count(body, "<Time>") != 2*samplesPerSatellite {
		t.Errorf("Expected %d time samples, got %d", 2*samplesPerSatellite, strings.Count(body, "<Time>"))
	}
}

func TestLocationsUnknownSatellite(t *testing.T) {
	h := newTestService(t).Handler()

	code, body := post(t, h, "/locations", strings.Replace(locationsRequest, "<Id>ace</Id>", "<Id>voyager1</Id>", 1))
	if code != http.StatusOK {
		t.Fatalf("Expected 200 with error status, got %d", code)
	}
	if !strings.Contains(body, "<StatusCode>Error</StatusCode>") || !strings.Contains(body, "InvalidSatellite") {
		t.Errorf("Expected InvalidSatellite error reply, got %s", body)
	}
}

func TestLocationsRejectsForeignNamespace(t *testing.T) {
	h := newTestService(t).Handler()
	code, _ := post(t, h, "/locations", `<DataRequest><TimeInterval/></DataRequest>`)
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", code)
	}
}

func TestGraphs(t *testing.T) {
	h := newTestService(t).Handler()

	request := `<GraphRequest xmlns="http://sscweb.gsfc.nasa.gov/schema">
  <TimeInterval><Start>2008-01-02T00:00:00.000Z</Start><End>2008-01-03T00:00:00.000Z</End></TimeInterval>
  <Satellites><Id>themisa</Id><ResolutionFactor>2</ResolutionFactor></Satellites>
  <GraphOptions xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:type="MapProjectionGraphOptions"/>
</GraphRequest>`

	code, body := post(t, h, "/graphs", request)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", code, body)
	}
	if !strings.Contains(body, "<Name>http://mock.local/tmp/ssc_map_1.gif</Name>") {
		t.Errorf("Expected gif URL, got %s", body)
	}
	if !strings.Contains(body, "<Name>http://mock.local/tmp/ssc_map_1.pdf</Name>") {
		t.Errorf("Expected pdf URL, got %s", body)
	}

	code, body = post(t, h, "/graphs", strings.Replace(request, "MapProjectionGraphOptions", "PolarGraphOptions", 1))
	if code != http.StatusOK || !strings.Contains(body, "InvalidGraphOptions") {
		t.Errorf("Expected InvalidGraphOptions error reply, got %d %s", code, body)
	}
}

func TestServerServesFixturesAndFiles(t *testing.T) {
	srv, err := NewServer()
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	defer srv.Close()

	tests := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/observatories", http.StatusOK, "application/json"},
		{"/groundStations", http.StatusOK, "application/json"},
		{"/tmp/ssc_orbit_1.gif", http.StatusOK, "image/gif"},
		{"/tmp/ssc_orbit_1.pdf", http.StatusOK, "application/pdf"},
		{"/tmp/ssc_orbit_1.txt", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		resp, err := http.Get(srv.URL + tt.path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", tt.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.status {
			t.Errorf("GET %s: expected %d, got %d", tt.path, tt.status, resp.StatusCode)
		}
		if tt.contentType != "" && resp.Header.Get("Content-Type") != tt.contentType {
			t.Errorf("GET %s: expected %s, got %s", tt.path, tt.contentType, resp.Header.Get("Content-Type"))
		}
	}

	resp, err := http.Get(srv.URL + "/locations")
	if err != nil {
		t.Fatalf("GET /locations failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET /locations, got %d", resp.StatusCode)
	}
}
