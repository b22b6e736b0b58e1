package fetchers

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"sscweb/internal/logger"
	"sscweb/internal/metrics"
	"sscweb/internal/requests"
)

// DefaultBaseURL is the production SSC REST endpoint
const DefaultBaseURL = "https://sscweb.gsfc.nasa.gov/WS/sscr/2"

// maxErrorBody caps how much of a failed response is kept in ServiceError
const maxErrorBody = 512

// TransportError reports a request that never produced an HTTP response
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError reports a non-2xx HTTP response
type ServiceError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s %s HTTP error status = %d", e.Method, e.URL, e.StatusCode)
}

// Options configures an SSCFetcher
type Options struct {
	BaseURL   string
	UserAgent string
	// Zero means no client-side timeout
	Timeout time.Duration
}

// SSCFetcher performs the HTTP exchanges with the SSC web services and
// returns raw response bodies for the catalog and replies packages to decode.
type SSCFetcher struct {
	client *resty.Client
	log    *logger.Logger
}

// NewSSCFetcher creates a fetcher for the service at opts.BaseURL
func NewSSCFetcher(opts Options, log *logger.Logger) *SSCFetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseURL)
	client.SetRetryCount(0)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return NewSSCFetcherWithClient(client, log)
}

// NewSSCFetcherWithClient wraps an already configured resty client
func NewSSCFetcherWithClient(client *resty.Client, log *logger.Logger) *SSCFetcher {
	if log == nil {
		log = logger.Component("fetcher")
	}
	return &SSCFetcher{client: client, log: log}
}

// FetchObservatories retrieves the raw observatory catalog (JSON)
func (f *SSCFetcher) FetchObservatories(ctx context.Context) ([]byte, error) {
	return f.do(ctx, f.client.R().SetHeader("Accept", "application/json"), resty.MethodGet, "/observatories")
}

// FetchGroundStations retrieves the raw ground station list (JSON)
func (f *SSCFetcher) FetchGroundStations(ctx context.Context) ([]byte, error) {
	return f.do(ctx, f.client.R().SetHeader("Accept", "application/json"), resty.MethodGet, "/groundStations")
}

// Submit POSTs an XML request body to path and returns the XML reply body
func (f *SSCFetcher) Submit(ctx context.Context, path string, body []byte) ([]byte, error) {
	req := f.client.R().
		SetHeader("Content-Type", "application/xml").
		SetHeader("Accept", "application/xml").
		SetBody(body)
	return f.do(ctx, req, resty.MethodPost, path)
}

// SubmitDocument marshals doc and submits it to the endpoint for its kind
func (f *SSCFetcher) SubmitDocument(ctx context.Context, doc *requests.Document) ([]byte, error) {
	body, err := doc.Marshal()
	if err != nil {
		return nil, err
	}
	return f.Submit(ctx, doc.Kind.Path(), body)
}

// Download retrieves a generated plot file by absolute URL
func (f *SSCFetcher) Download(ctx context.Context, fileURL string) ([]byte, error) {
	u, err := url.Parse(fileURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("invalid plot URL %q: must be absolute", fileURL)
	}
	return f.do(ctx, f.client.R(), resty.MethodGet, fileURL)
}

func (f *SSCFetcher) do(ctx context.Context, req *resty.Request, method, target string) ([]byte, error) {
	endpoint := metrics.Endpoint(target)
	start := time.Now()

	f.log.Debug("Sending request", logger.Fields{"method": method, "endpoint": endpoint})

	resp, err := req.SetContext(ctx).Execute(method, target)
	elapsed := time.Since(start)

	fullURL := target
	if resp != nil && resp.Request != nil && resp.Request.URL != "" {
		fullURL = resp.Request.URL
	}

	if err != nil {
		metrics.ObserveServiceCall(endpoint, metrics.OutcomeTransportError, elapsed)
		f.log.Error("Request failed", err, logger.Fields{"method": method, "url": fullURL})
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}

	if !resp.IsSuccess() {
		metrics.ObserveServiceCall(endpoint, metrics.OutcomeHTTPError, elapsed)
		body := resp.Body()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		f.log.Warn("Service returned error status", logger.Fields{
			"method": method,
			"url":    fullURL,
			"status": resp.StatusCode(),
		})
		return nil, &ServiceError{Method: method, URL: fullURL, StatusCode: resp.StatusCode(), Body: string(body)}
	}

	metrics.ObserveServiceCall(endpoint, metrics.OutcomeSuccess, elapsed)
	f.log.Debug("Request completed", logger.Fields{
		"method":      method,
		"endpoint":    endpoint,
		"status":      resp.StatusCode(),
		"bytes":       len(resp.Body()),
		"duration_ms": elapsed.Milliseconds(),
	})
	return resp.Body(), nil
}
