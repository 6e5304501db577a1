// README: Booking aggregate and status definitions.
package booking

import (
	"time"

	"shuttle/internal/modules/fare"
	"shuttle/internal/types"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusAssigned  Status = "assigned"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Booking struct {
	ID                types.ID
	Ref               string
	CustomerName      string
	CustomerPhone     string
	CustomerEmail     string
	ServiceType       fare.ServiceType
	PickupAddress     string
	AdditionalPickups []string
	DropoffAddress    string
	Passengers        int
	VIPAirportPickup  bool
	OversizedLuggage  bool
	IsReturnTrip      bool
	PickupDate        string // "2006-01-02"
	PickupTime        string // "15:04"
	ReturnDate        string // set when IsReturnTrip
	ReturnTime        string
	Status            Status
	StatusVersion     int
	Fare              fare.Breakdown
	DriverID          *types.ID
	CreatedAt         time.Time
	ConfirmedAt       *time.Time
	AssignedAt        *time.Time
	CompletedAt       *time.Time
	CancelledAt       *time.Time
	CancelReason      *string
}

type Event struct {
	ID         int64
	BookingID  types.ID
	FromStatus Status
	ToStatus   Status
	ActorType  string
	ActorID    *types.ID
	CreatedAt  time.Time
}

// AllowedTransitions represents the booking state flow as code.
// assigned -> confirmed covers driver unassignment/reassignment.
var AllowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusAssigned, StatusCancelled},
	StatusAssigned:  {StatusCompleted, StatusConfirmed, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
