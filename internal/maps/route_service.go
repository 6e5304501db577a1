// README: Google Maps Directions adapter for distances and drive times.
package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"
)

// ErrUnresolvedAddress is returned when the Maps API cannot geocode or
// route one of the requested addresses. Callers must not fall back to a
// zero distance on this error.
var ErrUnresolvedAddress = errors.New("address could not be resolved")

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
	region string
}

// NewRouteService creates a new RouteService with the given API key.
// region biases geocoding results (e.g. "NZ").
func NewRouteService(apiKey, region string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client, region: region}, nil
}

// LegDistancesKm returns the driving distance in kilometres for each
// consecutive pair in the ordered waypoint sequence. len(result) is
// len(waypoints)-1. Stops are routed in the given order, not optimised.
func (s *RouteService) LegDistancesKm(ctx context.Context, waypoints []string) ([]float64, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("need at least 2 waypoints, got %d", len(waypoints))
	}
	out := make([]float64, 0, len(waypoints)-1)
	for i := 0; i < len(waypoints)-1; i++ {
		leg, err := s.drivingLeg(ctx, waypoints[i], waypoints[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, float64(leg.Distance.Meters)/1000.0)
	}
	return out, nil
}

// DriveMinutes returns the estimated driving time in minutes from origin
// to destination.
func (s *RouteService) DriveMinutes(ctx context.Context, origin, destination string) (float64, error) {
	leg, err := s.drivingLeg(ctx, origin, destination)
	if err != nil {
		return 0, err
	}
	return leg.Duration.Minutes(), nil
}

func (s *RouteService) drivingLeg(ctx context.Context, origin, destination string) (*maps.Leg, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    "en",
		Region:      s.region,
	}

	routes, waypoints, err := s.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}

	for _, wp := range waypoints {
		if wp.GeocoderStatus != "OK" {
			return nil, fmt.Errorf("%w: %s -> %s", ErrUnresolvedAddress, origin, destination)
		}
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, fmt.Errorf("%w: no route between %s and %s", ErrUnresolvedAddress, origin, destination)
	}

	return routes[0].Legs[0], nil
}
