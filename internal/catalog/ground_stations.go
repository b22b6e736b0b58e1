package catalog

import (
	"encoding/json"
	"fmt"
	"sort"

	"sscweb/internal/models"
)

// DecodeGroundStations decodes a GET /groundStations body. Stations are
// returned ordered by id.
func DecodeGroundStations(data []byte) ([]models.GroundStation, error) {
	var resp models.GroundStationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode ground station response: %w", err)
	}

	raw := resp.Value.GroundStation.Value
	stations := make([]models.GroundStation, 0, len(raw))
	for _, entry := range raw {
		d := entry.Value
		if d.ID == "" {
			return nil, fmt.Errorf("ground station %q has no id", d.Name)
		}
		stations = append(stations, models.GroundStation{
			ID:        d.ID,
			Name:      d.Name,
			Latitude:  d.Location.Value.Latitude,
			Longitude: d.Location.Value.Longitude,
		})
	}

	sort.Slice(stations, func(i, j int) bool {
		return stations[i].ID < stations[j].ID
	})
	return stations, nil
}
