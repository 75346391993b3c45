// Package routing talks to the external directions service and caches its
// answers.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"move-booking/internal/models"
)

// DirectionsClient calls a Google Directions compatible endpoint.
type DirectionsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewDirectionsClient creates a client. A nil httpClient gets a 10s timeout client.
func NewDirectionsClient(baseURL, apiKey string, httpClient *http.Client) *DirectionsClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &DirectionsClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// directionsResponse is the part of the Directions API response we read.
type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func formatLatLng(l models.Location) string {
	return strconv.FormatFloat(l.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(l.Longitude, 'f', -1, 64)
}

// Route asks the directions service for the driving route between two points.
// Distance and duration are summed over all legs of the first route.
func (c *DirectionsClient) Route(ctx context.Context, origin, destination models.Location) (*models.Route, error) {
	q := url.Values{}
	q.Set("origin", formatLatLng(origin))
	q.Set("destination", formatLatLng(destination))
	q.Set("mode", "driving")
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("routing.Route build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing.Route call directions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing.Route: directions returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("routing.Route read body: %w", err)
	}

	var directions directionsResponse
	if err := json.Unmarshal(body, &directions); err != nil {
		return nil, fmt.Errorf("routing.Route unmarshal: %w", err)
	}

	switch directions.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, models.ErrNoRoute
	default:
		return nil, fmt.Errorf("routing.Route: directions status %s: %s", directions.Status, directions.ErrorMessage)
	}

	if len(directions.Routes) == 0 || len(directions.Routes[0].Legs) == 0 {
		return nil, models.ErrNoRoute
	}

	first := directions.Routes[0]
	route := &models.Route{Polyline: first.OverviewPolyline.Points}
	for _, leg := range first.Legs {
		route.DistanceMeters += leg.Distance.Value
		route.DurationSeconds += leg.Duration.Value
	}
	return route, nil
}
