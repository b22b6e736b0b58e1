// Package session ties the catalog, request builder, fetcher and reply
// parsers together and enforces a single outstanding submission.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"sscweb/internal/catalog"
	"sscweb/internal/logger"
	"sscweb/internal/metrics"
	"sscweb/internal/models"
	"sscweb/internal/replies"
	"sscweb/internal/requests"
)

// ErrBusy is returned when a submission is attempted while another is outstanding
var ErrBusy = errors.New("a request is already outstanding")

// ErrNoCatalog is returned when a submission is attempted before the first
// successful Refresh
var ErrNoCatalog = errors.New("observatory catalog has not been loaded")

// Fetcher is the transport a Session drives
type Fetcher interface {
	FetchObservatories(ctx context.Context) ([]byte, error)
	SubmitDocument(ctx context.Context, doc *requests.Document) ([]byte, error)
}

// Input is a user selection as entered
type Input struct {
	Start        string
	End          string
	SatelliteIDs []string
}

// Session holds the current catalog and serializes submissions
type Session struct {
	fetcher  Fetcher
	log      *logger.Logger
	catalog  atomic.Pointer[catalog.Catalog]
	inFlight sync.Mutex
}

// New creates a session with no catalog loaded
func New(fetcher Fetcher, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Component("session")
	}
	return &Session{fetcher: fetcher, log: log}
}

// Refresh fetches and rebuilds the catalog. On failure the previous catalog
// stays in place.
func (s *Session) Refresh(ctx context.Context) (*catalog.Catalog, error) {
	body, err := s.fetcher.FetchObservatories(ctx)
	if err != nil {
		s.log.Error("Failed to fetch observatories", err)
		return nil, err
	}
	c, err := catalog.Parse(body)
	if err != nil {
		s.log.Error("Failed to build catalog", err)
		return nil, err
	}

	s.catalog.Store(c)
	s.log.Info("Observatory catalog loaded", logger.Fields{
		"observatories": c.Len(),
		"dropped":       c.Dropped(),
	})
	return c, nil
}

// Catalog returns the current catalog, or nil before the first Refresh
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog.Load()
}

// Busy reports whether a submission is outstanding
func (s *Session) Busy() bool {
	if s.inFlight.TryLock() {
		s.inFlight.Unlock()
		return false
	}
	return true
}

// acquire claims the submission slot. The returned func releases it.
func (s *Session) acquire() (func(), error) {
	if !s.inFlight.TryLock() {
		metrics.IncBusyRejection()
		s.log.Warn("Submission rejected, another request is outstanding")
		return nil, ErrBusy
	}
	return s.inFlight.Unlock, nil
}

func (s *Session) build(spec requests.Spec) (*requests.Document, *catalog.Catalog, error) {
	c := s.Catalog()
	if c == nil {
		return nil, nil, ErrNoCatalog
	}
	doc, err := requests.NewBuilder(c).Build(spec)
	if err != nil {
		return nil, nil, err
	}
	return doc, c, nil
}

// RequestLocations submits a data request and returns one trajectory per
// satellite in reply order.
func (s *Session) RequestLocations(ctx context.Context, in Input) ([]models.TrajectoryRecord, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	interval, err := requests.ParseInterval(in.Start, in.End)
	if err != nil {
		return nil, err
	}
	doc, c, err := s.build(requests.NewDataSpec(interval, in.SatelliteIDs))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := s.fetcher.SubmitDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	records, err := replies.ParseTrajectories(body, c)
	if err != nil {
		s.log.Error("Failed to interpret data reply", err)
		return nil, err
	}

	s.log.Info("Locations retrieved", logger.Fields{
		"satellites":  len(records),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return records, nil
}

// RequestGraph submits a graph request for the given variant
func (s *Session) RequestGraph(ctx context.Context, in Input, variant requests.GraphVariant) (models.PlotResult, error) {
	release, err := s.acquire()
	if err != nil {
		return models.PlotResult{}, err
	}
	defer release()

	interval, err := requests.ParseInterval(in.Start, in.End)
	if err != nil {
		return models.PlotResult{}, err
	}
	doc, _, err := s.build(requests.NewGraphSpec(interval, in.SatelliteIDs, variant))
	if err != nil {
		return models.PlotResult{}, err
	}

	start := time.Now()
	body, err := s.fetcher.SubmitDocument(ctx, doc)
	if err != nil {
		return models.PlotResult{}, err
	}
	result, err := replies.ParsePlotURLs(body)
	if err != nil {
		s.log.Error("Failed to interpret graph reply", err)
		return models.PlotResult{}, err
	}

	s.log.Info("Plots generated", logger.Fields{
		"files":       len(result.Files),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return result, nil
}
