// README: Fare service computes itemised quotes from routed distances.
package fare

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"shuttle/internal/maps"
	"shuttle/internal/types"
)

var (
	// ErrInvalidInput marks a malformed request, rejected before any
	// provider call.
	ErrInvalidInput = errors.New("invalid fare request")
	// ErrAddressResolution marks a trip whose addresses could not be
	// geocoded or routed. No partial price is ever returned for it.
	ErrAddressResolution = errors.New("address could not be resolved")
)

// DistanceProvider returns per-leg road distances for an ordered waypoint
// sequence. Implementations report unresolvable addresses with an error
// matching maps.ErrUnresolvedAddress.
type DistanceProvider interface {
	LegDistancesKm(ctx context.Context, waypoints []string) ([]float64, error)
}

type Service struct {
	store    *Store
	distance DistanceProvider
}

func NewService(store *Store, distance DistanceProvider) *Service {
	return &Service{store: store, distance: distance}
}

// Quote prices a trip. It returns either a complete Breakdown or an error,
// never a partial result.
func (s *Service) Quote(ctx context.Context, req Request) (Breakdown, error) {
	req.PickupAddress = strings.TrimSpace(req.PickupAddress)
	req.DropoffAddress = strings.TrimSpace(req.DropoffAddress)

	if req.PickupAddress == "" {
		return Breakdown{}, fmt.Errorf("%w: pickup address is required", ErrInvalidInput)
	}
	if req.DropoffAddress == "" {
		return Breakdown{}, fmt.Errorf("%w: dropoff address is required", ErrInvalidInput)
	}
	if req.Passengers < 1 {
		return Breakdown{}, fmt.Errorf("%w: passengers must be at least 1", ErrInvalidInput)
	}
	if _, ok := ParseServiceType(string(req.ServiceType)); !ok {
		return Breakdown{}, fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, req.ServiceType)
	}

	waypoints := buildWaypoints(req)
	legs, err := s.distance.LegDistancesKm(ctx, waypoints)
	if err != nil {
		if errors.Is(err, maps.ErrUnresolvedAddress) {
			return Breakdown{}, fmt.Errorf("%w: %v", ErrAddressResolution, err)
		}
		return Breakdown{}, err
	}

	distanceKm := 0.0
	for _, d := range legs {
		distanceKm += d
	}

	rates, err := s.rates(ctx)
	if err != nil {
		return Breakdown{}, err
	}

	return Compute(req, distanceKm, rates), nil
}

// Compute builds the breakdown from an already-routed distance. It is pure
// and exported so the booking flow can re-price a stored trip without
// another provider round-trip.
func Compute(req Request, distanceKm float64, rates Rates) Breakdown {
	cur := rates.Currency

	base := basePriceCents(distanceKm, rates)

	var airport int64
	// Substring heuristic on the primary endpoints, matching the booking
	// site's behaviour. Applied once even when both ends are airports.
	if isAirportAddress(req.PickupAddress) || isAirportAddress(req.DropoffAddress) {
		airport = rates.AirportFeeCents
	}

	passenger := int64(req.Passengers-1) * rates.ExtraPassengerCents

	var luggage, vip int64
	if req.OversizedLuggage {
		luggage = rates.OversizedLuggageCents
	}
	if req.VIPAirportPickup {
		vip = rates.VIPFeeCents
	}

	total := base + airport + passenger + luggage + vip

	// The return leg mirrors the outbound leg exactly, so doubling on
	// exact cents keeps total(return) == 2*total(one-way).
	mult := int64(1)
	if req.IsReturnTrip {
		mult = 2
	}

	return Breakdown{
		DistanceKm:          distanceKm,
		BasePrice:           types.NewMoney(base*mult, cur),
		AirportFee:          types.NewMoney(airport*mult, cur),
		PassengerFee:        types.NewMoney(passenger*mult, cur),
		OversizedLuggageFee: types.NewMoney(luggage*mult, cur),
		VIPFee:              types.NewMoney(vip*mult, cur),
		TotalPrice:          types.NewMoney(total*mult, cur),
		ReturnTrip:          req.IsReturnTrip,
	}
}

func (s *Service) rates(ctx context.Context) (Rates, error) {
	if s.store == nil {
		return DefaultRates(), nil
	}
	rates, err := s.store.ActiveRates(ctx)
	if errors.Is(err, ErrNoRates) {
		return DefaultRates(), nil
	}
	if err != nil {
		return Rates{}, err
	}
	return rates, nil
}

// buildWaypoints returns pickup, non-blank additional pickups in order,
// then dropoff.
func buildWaypoints(req Request) []string {
	waypoints := make([]string, 0, len(req.AdditionalPickups)+2)
	waypoints = append(waypoints, req.PickupAddress)
	for _, p := range req.AdditionalPickups {
		if p = strings.TrimSpace(p); p != "" {
			waypoints = append(waypoints, p)
		}
	}
	return append(waypoints, req.DropoffAddress)
}

// basePriceCents charges the minimum fare for the first IncludedKm and the
// per-km rate on the excess, rounded to the cent once.
func basePriceCents(distanceKm float64, rates Rates) int64 {
	cents := rates.MinimumFareCents
	if distanceKm > rates.IncludedKm {
		cents += int64(math.Round((distanceKm - rates.IncludedKm) * float64(rates.PerKmCents)))
	}
	return cents
}

func isAirportAddress(addr string) bool {
	return strings.Contains(strings.ToLower(addr), "airport")
}
