package requests

import (
	"encoding/xml"
	"fmt"

	"sscweb/internal/catalog"
	"sscweb/internal/models"
	"sscweb/internal/ssctime"
)

// Fixed request parameters
const (
	InternalBFieldModel = "IGRF"
	ExternalBFieldModel = "Tsyganenko89cBFieldModel"
	KeyParameterValues  = "KP3_3_3"
	TraceStopAltitude   = 100
	ResolutionFactor    = 2
	MinMaxPoints        = 2
)

// ValidationKind identifies why a Spec was rejected
type ValidationKind int

const (
	NoSatellites ValidationKind = iota
	StartNotBeforeEnd
	UnknownSatellite
	DuplicateSatellite
	TimeRangeOutOfBounds
	MissingGraphVariant
)

func (k ValidationKind) String() string {
	switch k {
	case NoSatellites:
		return "NoSatellites"
	case StartNotBeforeEnd:
		return "StartNotBeforeEnd"
	case UnknownSatellite:
		return "UnknownSatellite"
	case DuplicateSatellite:
		return "DuplicateSatellite"
	case TimeRangeOutOfBounds:
		return "TimeRangeOutOfBounds"
	case MissingGraphVariant:
		return "MissingGraphVariant"
	default:
		return fmt.Sprintf("ValidationKind(%d)", int(k))
	}
}

// ValidationError is returned by Build for a Spec that cannot be submitted.
// SatelliteID, SatelliteName, ValidStart and ValidEnd are set for the
// per-satellite kinds.
type ValidationError struct {
	Kind          ValidationKind
	SatelliteID   string
	SatelliteName string
	ValidStart    ssctime.Value
	ValidEnd      ssctime.Value
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case NoSatellites:
		return "you must select one or more satellites"
	case StartNotBeforeEnd:
		return "start time must be before end time"
	case UnknownSatellite:
		return fmt.Sprintf("unknown satellite %q", e.SatelliteID)
	case DuplicateSatellite:
		return fmt.Sprintf("satellite %q selected more than once", e.SatelliteID)
	case TimeRangeOutOfBounds:
		return fmt.Sprintf("time range outside of data for %s: it must be within %s to %s",
			e.SatelliteName, e.ValidStart, e.ValidEnd)
	case MissingGraphVariant:
		return "graph request requires a graph variant"
	default:
		return "invalid request: " + e.Kind.String()
	}
}

// Document is a request ready for submission
type Document struct {
	Kind Kind
	root interface{}
}

// Marshal serializes the document with an XML declaration
func (d *Document) Marshal() ([]byte, error) {
	body, err := xml.Marshal(d.root)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", d.Kind, err)
	}
	return append([]byte(xml.Header), body...), nil
}

// Builder turns Specs into Documents using a catalog snapshot
type Builder struct {
	catalog *catalog.Catalog
}

// NewBuilder creates a builder validating against c
func NewBuilder(c *catalog.Catalog) *Builder {
	return &Builder{catalog: c}
}

// Validate checks spec without building it
func (b *Builder) Validate(spec Spec) error {
	if len(spec.SatelliteIDs) == 0 {
		return &ValidationError{Kind: NoSatellites}
	}
	if !spec.Interval.Start.Before(spec.Interval.End) {
		return &ValidationError{Kind: StartNotBeforeEnd}
	}
	if spec.Kind == KindGraph && spec.Variant == nil {
		return &ValidationError{Kind: MissingGraphVariant}
	}

	seen := make(map[string]bool, len(spec.SatelliteIDs))
	for _, id := range spec.SatelliteIDs {
		if seen[id] {
			return &ValidationError{Kind: DuplicateSatellite, SatelliteID: id}
		}
		seen[id] = true

		obs, ok := b.catalog.Lookup(id)
		if !ok {
			return &ValidationError{Kind: UnknownSatellite, SatelliteID: id}
		}
		if !obs.Contains(spec.Interval.Start, spec.Interval.End) {
			return &ValidationError{
				Kind:          TimeRangeOutOfBounds,
				SatelliteID:   obs.ID,
				SatelliteName: obs.Name,
				ValidStart:    obs.Start,
				ValidEnd:      obs.End,
			}
		}
	}
	return nil
}

// Build validates spec and produces the request document. Satellites keep
// the order in which they were selected.
func (b *Builder) Build(spec Spec) (*Document, error) {
	if err := b.Validate(spec); err != nil {
		return nil, err
	}

	interval := models.TimeInterval{
		Start: spec.Interval.Start.String(),
		End:   spec.Interval.End.String(),
	}
	satellites := make([]models.SatelliteSpecification, 0, len(spec.SatelliteIDs))
	for _, id := range spec.SatelliteIDs {
		satellites = append(satellites, models.SatelliteSpecification{
			ID:               id,
			ResolutionFactor: ResolutionFactor,
		})
	}

	switch spec.Kind {
	case KindData:
		return &Document{Kind: KindData, root: models.DataRequest{
			TimeInterval: interval,
			BFieldModel:  bFieldModel(),
			Satellites:   satellites,
			OutputOptions: models.OutputOptions{
				AllLocationFilters: true,
				CoordinateOptions:  gseComponents(),
				MinMaxPoints:       MinMaxPoints,
			},
		}}, nil
	case KindGraph:
		return &Document{Kind: KindGraph, root: models.GraphRequest{
			TimeInterval: interval,
			BFieldModel:  bFieldModel(),
			Satellites:   satellites,
			GraphOptions: spec.Variant.graphOptions(),
		}}, nil
	default:
		return nil, fmt.Errorf("unsupported request kind %s", spec.Kind)
	}
}

func bFieldModel() models.BFieldModel {
	return models.BFieldModel{
		InternalBFieldModel: InternalBFieldModel,
		ExternalBFieldModel: models.ExternalBFieldModel{
			XSI:                models.XSINamespace,
			Type:               ExternalBFieldModel,
			KeyParameterValues: KeyParameterValues,
		},
		TraceStopAltitude: TraceStopAltitude,
	}
}
