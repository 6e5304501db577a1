// README: Return-leg queue definitions and urgency tiers.
package dispatch

import (
	"time"

	"shuttle/internal/types"
)

type Tier string

const (
	TierOverdue   Tier = "overdue"
	TierLeaveNow  Tier = "leave_now"
	TierLeaveSoon Tier = "leave_soon"
	TierOnTrack   Tier = "on_track"
)

func tierSeverity(t Tier) int {
	switch t {
	case TierOverdue:
		return 3
	case TierLeaveNow:
		return 2
	case TierLeaveSoon:
		return 1
	default:
		return 0
	}
}

// ReturnLeg is one booking's return trip awaiting a driver departure from
// base. PickupAddress is where the driver collects the customer (the
// original trip's dropoff). DriveMinutesFromBase is nil when no estimate
// is available yet.
type ReturnLeg struct {
	BookingID            types.ID `json:"booking_id"`
	BookingRef           string   `json:"booking_ref"`
	CustomerName         string   `json:"customer_name"`
	CustomerPhone        string   `json:"customer_phone"`
	ReturnDate           string   `json:"return_date"` // "2006-01-02"
	ReturnTime           string   `json:"return_time"` // "15:04"
	PickupAddress        string   `json:"pickup_address"`
	DriverAssigned       bool     `json:"driver_assigned"`
	DriverName           string   `json:"driver_name,omitempty"`
	DriveMinutesFromBase *float64 `json:"drive_minutes_from_base,omitempty"`
}

// Result is the classified urgency for one return leg. DegradedEstimate
// marks legs classified without a drive-time estimate, whose leave-by may
// be unreliable.
type Result struct {
	Leg               ReturnLeg `json:"leg"`
	LeaveBy           time.Time `json:"leave_by"`
	MinutesUntilLeave float64   `json:"minutes_until_leave"`
	Tier              Tier      `json:"tier"`
	PriorityScore     int64     `json:"priority_score"`
	DegradedEstimate  bool      `json:"degraded_estimate,omitempty"`
}

// Diagnostic reports a leg excluded from the ranked queue so one bad
// record cannot hide the rest.
type Diagnostic struct {
	BookingID types.ID `json:"booking_id"`
	Reason    string   `json:"reason"`
}
