// README: Fare request, rate table, and itemised breakdown definitions.
package fare

import "shuttle/internal/types"

type ServiceType string

const (
	ServiceAirportShuttle  ServiceType = "airport_shuttle"
	ServicePrivateTransfer ServiceType = "private_transfer"
)

func ParseServiceType(s string) (ServiceType, bool) {
	switch ServiceType(s) {
	case ServiceAirportShuttle, ServicePrivateTransfer:
		return ServiceType(s), true
	default:
		return "", false
	}
}

// Request describes one trip to price. AdditionalPickups are visited in
// order between the primary pickup and the dropoff; blank entries are
// dropped before routing.
type Request struct {
	ServiceType       ServiceType
	PickupAddress     string
	AdditionalPickups []string
	DropoffAddress    string
	Passengers        int
	VIPAirportPickup  bool
	OversizedLuggage  bool
	IsReturnTrip      bool
}

// Rates holds the pricing constants, all money in cents. The minimum fare
// covers the first IncludedKm; distance beyond that is charged per km.
type Rates struct {
	MinimumFareCents      int64
	IncludedKm            float64
	PerKmCents            int64
	AirportFeeCents       int64
	ExtraPassengerCents   int64
	OversizedLuggageCents int64
	VIPFeeCents           int64
	Currency              string
}

// DefaultRates are the compiled-in NZD rates used when no row is active in
// the fare_rates table.
func DefaultRates() Rates {
	return Rates{
		MinimumFareCents:      6000,
		IncludedKm:            10.0,
		PerKmCents:            250,
		AirportFeeCents:       1500,
		ExtraPassengerCents:   1000,
		OversizedLuggageCents: 1000,
		VIPFeeCents:           2500,
		Currency:              "NZD",
	}
}

// Breakdown is an itemised quote. Every money component is present even
// when zero so callers can always show the full itemisation. For return
// trips each component is already doubled; DistanceKm stays one-way.
type Breakdown struct {
	DistanceKm          float64     `json:"distance_km"`
	BasePrice           types.Money `json:"base_price"`
	AirportFee          types.Money `json:"airport_fee"`
	PassengerFee        types.Money `json:"passenger_fee"`
	OversizedLuggageFee types.Money `json:"oversized_luggage_fee"`
	VIPFee              types.Money `json:"vip_fee"`
	TotalPrice          types.Money `json:"total_price"`
	ReturnTrip          bool        `json:"return_trip"`
}
