package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/observatories", "/observatories"},
		{"/WS/sscr/2/observatories", "/observatories"},
		{"/WS/sscr/2/observatories/", "/observatories"},
		{"/WS/sscr/2/groundStations", "/groundStations"},
		{"/WS/sscr/2/locations", "/locations"},
		{"/WS/sscr/2/graphs?x=1", "/graphs"},
		{"/tmp/ssc_plot_1234.gif", "download"},
		{"", "download"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Endpoint(tt.path); got != tt.want {
				t.Errorf("Endpoint(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestObserveServiceCall(t *testing.T) {
	counter := serviceRequestsTotal.WithLabelValues("/graphs", OutcomeHTTPError)
	before := testutil.ToFloat64(counter)

	ObserveServiceCall("/graphs", OutcomeHTTPError, 150*time.Millisecond)
	ObserveServiceCall("/graphs", OutcomeHTTPError, 20*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("Expected counter to grow by 2, got %v", got)
	}
}

func TestIncBusyRejection(t *testing.T) {
	before := testutil.ToFloat64(submissionsRejectedTotal)
	IncBusyRejection()
	if got := testutil.ToFloat64(submissionsRejectedTotal) - before; got != 1 {
		t.Errorf("Expected rejection counter to grow by 1, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveServiceCall("/locations", OutcomeSuccess, time.Second)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{
		"sscweb_service_requests_total",
		"sscweb_service_request_duration_seconds",
		"sscweb_submissions_rejected_total",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("Expected %s in metrics output", name)
		}
	}
}
