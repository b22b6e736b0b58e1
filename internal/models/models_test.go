package models

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
)

func TestObservatoryResponseDecoding(t *testing.T) {
	body := `["gov.nasa.gsfc.sscweb.schema.ObservatoryResponse",{"Observatory":["java.util.ArrayList",[
		["gov.nasa.gsfc.sscweb.schema.ObservatoryDescription",{"Id":"ace","Name":"ACE","Resolution":720,
		"StartTime":["javax.xml.datatype.XMLGregorianCalendar","1997-08-25T17:48:00.000Z"],
		"EndTime":["javax.xml.datatype.XMLGregorianCalendar","2024-01-01T00:00:00.000Z"],
		"ResourceId":"spase://SMWG/Observatory/ACE","Geometry":"ignored"}]]]}]`

	var resp ObservatoryResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Failed to decode observatory response: %v", err)
	}

	list := resp.Value.Observatory.Value
	if len(list) != 1 {
		t.Fatalf("Expected 1 observatory, got %d", len(list))
	}

	obs := list[0].Value
	if obs.ID != "ace" || obs.Name != "ACE" {
		t.Errorf("Expected ace/ACE, got %s/%s", obs.ID, obs.Name)
	}
	if obs.Resolution != 720 {
		t.Errorf("Expected resolution 720, got %d", obs.Resolution)
	}
	if obs.StartTime.Value != "1997-08-25T17:48:00.000Z" {
		t.Errorf("Expected start time value, got %q", obs.StartTime.Value)
	}
	if obs.StartTime.Type != "javax.xml.datatype.XMLGregorianCalendar" {
		t.Errorf("Expected type name to be kept, got %q", obs.StartTime.Type)
	}
}

func TestTupleRejectsWrongShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object instead of array", `{"Id":"ace"}`},
		{"single element", `["java.lang.String"]`},
		{"three elements", `["a","b","c"]`},
		{"numeric type name", `[1,"x"]`},
		{"wrong value type", `["java.lang.String",42]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Tuple[string]
			if err := json.Unmarshal([]byte(tt.body), &v); err == nil {
				t.Errorf("Expected error for %s, got nil", tt.body)
			}
		})
	}
}

func TestTupleMarshalsPositionally(t *testing.T) {
	data, err := json.Marshal(Tuple[string]{Type: "java.lang.String", Value: "x"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `["java.lang.String","x"]` {
		t.Errorf("Expected positional array, got %s", data)
	}
}

func TestGraphOptionsElementName(t *testing.T) {
	req := GraphRequest{
		GraphOptions: OrbitGraphOptions{XSI: XSINamespace, Type: "OrbitGraphOptions"},
	}
	data, err := xml.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	out := string(data)
	if !strings.HasPrefix(out, `<GraphRequest xmlns="http://sscweb.gsfc.nasa.gov/schema">`) {
		t.Errorf("Expected namespaced root element, got %s", out)
	}
	if !strings.Contains(out, `<GraphOptions xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:type="OrbitGraphOptions">`) {
		t.Errorf("Expected typed GraphOptions element, got %s", out)
	}
}

func TestPlotResultPartition(t *testing.T) {
	result := PlotResult{Files: []PlotFile{
		{URL: "a.gif", Kind: PlotImage},
		{URL: "b.pdf", Kind: PlotDocument},
		{URL: "c.png", Kind: PlotImage},
	}}

	images := result.Images()
	if len(images) != 2 || images[0] != "a.gif" || images[1] != "c.png" {
		t.Errorf("Expected [a.gif c.png], got %v", images)
	}
	docs := result.Documents()
	if len(docs) != 1 || docs[0] != "b.pdf" {
		t.Errorf("Expected [b.pdf], got %v", docs)
	}

	data, err := json.Marshal(result.Files[1])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"url":"b.pdf","kind":"document"}` {
		t.Errorf("Unexpected JSON: %s", data)
	}
}
