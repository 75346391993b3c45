package routing

import (
	"fmt"

	"move-booking/internal/models"

	"github.com/twpayne/go-polyline"
)

// DecodePolyline decodes a string in the encoded polyline format
// (5 decimal places) into its coordinates.
func DecodePolyline(encoded string) ([]models.Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("routing.DecodePolyline: %w", err)
	}

	points := make([]models.Coordinate, 0, len(coords))
	for _, c := range coords {
		points = append(points, models.Coordinate{Latitude: c[0], Longitude: c[1]})
	}
	return points, nil
}
