package models

// ObservatoryResponse is the body returned by GET /observatories:
// [_, {Observatory: [_, [[_, {Id, Name, StartTime: [_, t], EndTime: [_, t]}], ...]]}]
type ObservatoryResponse = Tuple[ObservatoryList]

// ObservatoryList wraps the list of observatory descriptions
type ObservatoryList struct {
	Observatory Tuple[[]Tuple[ObservatoryDescription]] `json:"Observatory"`
}

// ObservatoryDescription is a single raw catalog entry as sent by the service
type ObservatoryDescription struct {
	ID         string        `json:"Id"`
	Name       string        `json:"Name"`
	Resolution int           `json:"Resolution,omitempty"`
	StartTime  Tuple[string] `json:"StartTime"`
	EndTime    Tuple[string] `json:"EndTime"`
	ResourceID string        `json:"ResourceId,omitempty"`
}

// GroundStationResponse is the body returned by GET /groundStations
type GroundStationResponse = Tuple[GroundStationList]

// GroundStationList wraps the list of ground station descriptions
type GroundStationList struct {
	GroundStation Tuple[[]Tuple[GroundStationDescription]] `json:"GroundStation"`
}

// GroundStationDescription is a single raw ground station entry
type GroundStationDescription struct {
	ID       string                    `json:"Id"`
	Name     string                    `json:"Name"`
	Location Tuple[GeographicLocation] `json:"Location"`
}

// GeographicLocation is a surface position in degrees
type GeographicLocation struct {
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
}

// GroundStation is the normalized form handed to callers
type GroundStation struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
