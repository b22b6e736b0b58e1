// Package catalog holds the list of observatories (satellites) the service
// knows about, together with the time span for which each has data.
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"

	"sscweb/internal/models"
	"sscweb/internal/ssctime"
)

// Observatory is a satellite with trajectory data between Start and End
type Observatory struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Start      ssctime.Value `json:"start"`
	End        ssctime.Value `json:"end"`
	Resolution int           `json:"resolution,omitempty"`
	ResourceID string        `json:"resource_id,omitempty"`
}

// Contains reports whether [start, end] lies within the observatory's data span
func (o Observatory) Contains(start, end ssctime.Value) bool {
	return !start.Before(o.Start) && !end.After(o.End)
}

// RangeTitle renders the data span for display, e.g.
// "1997-08-25T17:48:00 to 2024-01-01T00:00:00".
func (o Observatory) RangeTitle() string {
	return trimFraction(o.Start) + " to " + trimFraction(o.End)
}

func trimFraction(v ssctime.Value) string {
	s := v.String()
	return s[:len("2006-01-02T15:04:05")]
}

// NotFoundError reports a lookup of an id the catalog does not hold
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("observatory %q not found in catalog", e.ID)
}

// Catalog is an immutable, name-ordered set of observatories. A new Catalog
// is built on every refresh; existing values are never modified.
type Catalog struct {
	ordered []Observatory
	byID    map[string]int
	dropped int
}

// DecodeObservatories decodes a GET /observatories body into raw entries
func DecodeObservatories(data []byte) ([]models.ObservatoryDescription, error) {
	var resp models.ObservatoryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode observatory response: %w", err)
	}

	raw := resp.Value.Observatory.Value
	out := make([]models.ObservatoryDescription, 0, len(raw))
	for _, entry := range raw {
		out = append(out, entry.Value)
	}
	return out, nil
}

// Build orders raw entries by display name and drops every entry whose name
// equals the name of the entry immediately before it. Only adjacent
// duplicates are considered, and the first of a run is kept. An entry whose
// id was already kept under a different name is dropped as well.
func Build(raw []models.ObservatoryDescription) (*Catalog, error) {
	sorted := make([]models.ObservatoryDescription, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	c := &Catalog{
		ordered: make([]Observatory, 0, len(sorted)),
		byID:    make(map[string]int, len(sorted)),
	}

	var lastName string
	for i, entry := range sorted {
		if i > 0 && entry.Name == lastName {
			c.dropped++
			continue
		}
		lastName = entry.Name

		if _, exists := c.byID[entry.ID]; exists {
			c.dropped++
			continue
		}

		obs, err := convert(entry)
		if err != nil {
			return nil, err
		}
		c.byID[obs.ID] = len(c.ordered)
		c.ordered = append(c.ordered, obs)
	}

	return c, nil
}

func convert(entry models.ObservatoryDescription) (Observatory, error) {
	if entry.ID == "" {
		return Observatory{}, fmt.Errorf("observatory %q has no id", entry.Name)
	}
	start, err := ssctime.ParseServiceTime(entry.StartTime.Value)
	if err != nil {
		return Observatory{}, fmt.Errorf("observatory %s start time: %w", entry.ID, err)
	}
	end, err := ssctime.ParseServiceTime(entry.EndTime.Value)
	if err != nil {
		return Observatory{}, fmt.Errorf("observatory %s end time: %w", entry.ID, err)
	}
	if end.Before(start) {
		return Observatory{}, fmt.Errorf("observatory %s ends (%s) before it starts (%s)", entry.ID, end, start)
	}
	return Observatory{
		ID:         entry.ID,
		Name:       entry.Name,
		Start:      start,
		End:        end,
		Resolution: entry.Resolution,
		ResourceID: entry.ResourceID,
	}, nil
}

// Parse decodes and builds a catalog in one step
func Parse(data []byte) (*Catalog, error) {
	raw, err := DecodeObservatories(data)
	if err != nil {
		return nil, err
	}
	return Build(raw)
}

// ByID returns the observatory with the given id
func (c *Catalog) ByID(id string) (Observatory, error) {
	if obs, ok := c.Lookup(id); ok {
		return obs, nil
	}
	return Observatory{}, &NotFoundError{ID: id}
}

// Lookup is ByID for callers that only need presence
func (c *Catalog) Lookup(id string) (Observatory, bool) {
	if c == nil {
		return Observatory{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Observatory{}, false
	}
	return c.ordered[i], true
}

// All returns the observatories in display order. The slice is a copy.
func (c *Catalog) All() []Observatory {
	if c == nil {
		return nil
	}
	out := make([]Observatory, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of observatories
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ordered)
}

// Dropped returns how many raw entries were discarded while building
func (c *Catalog) Dropped() int {
	if c == nil {
		return 0
	}
	return c.dropped
}

// Default selections offered before the user picks anything
var (
	DefaultGraphSelection = []string{"themisa", "themisb"}
	DefaultDataSelection  = []string{"cluster1", "cluster2"}
)

// DefaultSelection returns those of ids present in the catalog, in catalog order
func (c *Catalog) DefaultSelection(ids ...string) []string {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var out []string
	for _, obs := range c.All() {
		if want[obs.ID] {
			out = append(out, obs.ID)
		}
	}
	return out
}
