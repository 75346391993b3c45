package models

// Coordinate is a single point of a decoded route polyline.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Route is the mapping service's answer for an origin/destination pair.
type Route struct {
	DistanceMeters  int          `json:"distance_meters"`
	DurationSeconds int          `json:"duration_seconds"`
	Polyline        string       `json:"polyline"`
	Points          []Coordinate `json:"points,omitempty"`
}
