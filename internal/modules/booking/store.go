// README: Booking store backed by PostgreSQL.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shuttle/internal/modules/dispatch"
	"shuttle/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, b *Booking) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO bookings (
			id, ref, customer_name, customer_phone, customer_email,
			service_type, pickup_address, additional_pickups, dropoff_address,
			passengers, vip_airport_pickup, oversized_luggage, return_trip,
			pickup_date, pickup_time, return_date, return_time,
			status, status_version,
			distance_km, base_price_cents, airport_fee_cents, passenger_fee_cents,
			oversized_luggage_fee_cents, vip_fee_cents, total_price_cents, currency,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16, $17,
			$18, $19,
			$20, $21, $22, $23,
			$24, $25, $26, $27,
			$28
		)`,
		string(b.ID), b.Ref, b.CustomerName, b.CustomerPhone, b.CustomerEmail,
		string(b.ServiceType), b.PickupAddress, b.AdditionalPickups, b.DropoffAddress,
		b.Passengers, b.VIPAirportPickup, b.OversizedLuggage, b.IsReturnTrip,
		b.PickupDate, b.PickupTime, nullIfEmpty(b.ReturnDate), nullIfEmpty(b.ReturnTime),
		string(b.Status), b.StatusVersion,
		b.Fare.DistanceKm, b.Fare.BasePrice.Amount, b.Fare.AirportFee.Amount, b.Fare.PassengerFee.Amount,
		b.Fare.OversizedLuggageFee.Amount, b.Fare.VIPFee.Amount, b.Fare.TotalPrice.Amount, b.Fare.TotalPrice.Currency,
		b.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Booking, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, ref, customer_name, customer_phone, customer_email,
		       service_type, pickup_address, additional_pickups, dropoff_address,
		       passengers, vip_airport_pickup, oversized_luggage, return_trip,
		       pickup_date, pickup_time, return_date, return_time,
		       status, status_version,
		       distance_km, base_price_cents, airport_fee_cents, passenger_fee_cents,
		       oversized_luggage_fee_cents, vip_fee_cents, total_price_cents, currency,
		       driver_id, created_at, confirmed_at, assigned_at, completed_at,
		       cancelled_at, cancel_reason
		FROM bookings
		WHERE id = $1`, string(id),
	)

	var b Booking
	var returnDate, returnTime, driverID, cancelReason sql.NullString
	var confirmedAt, assignedAt, completedAt, cancelledAt sql.NullTime
	var base, airport, passenger, luggage, vip, total int64
	var currency string

	err := row.Scan(
		&b.ID, &b.Ref, &b.CustomerName, &b.CustomerPhone, &b.CustomerEmail,
		&b.ServiceType, &b.PickupAddress, &b.AdditionalPickups, &b.DropoffAddress,
		&b.Passengers, &b.VIPAirportPickup, &b.OversizedLuggage, &b.IsReturnTrip,
		&b.PickupDate, &b.PickupTime, &returnDate, &returnTime,
		&b.Status, &b.StatusVersion,
		&b.Fare.DistanceKm, &base, &airport, &passenger,
		&luggage, &vip, &total, &currency,
		&driverID, &b.CreatedAt, &confirmedAt, &assignedAt, &completedAt,
		&cancelledAt, &cancelReason,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	b.ReturnDate = returnDate.String
	b.ReturnTime = returnTime.String
	b.Fare.BasePrice = types.NewMoney(base, currency)
	b.Fare.AirportFee = types.NewMoney(airport, currency)
	b.Fare.PassengerFee = types.NewMoney(passenger, currency)
	b.Fare.OversizedLuggageFee = types.NewMoney(luggage, currency)
	b.Fare.VIPFee = types.NewMoney(vip, currency)
	b.Fare.TotalPrice = types.NewMoney(total, currency)
	b.Fare.ReturnTrip = b.IsReturnTrip

	if driverID.Valid {
		d := types.ID(driverID.String)
		b.DriverID = &d
	}
	b.ConfirmedAt = toTimePtr(confirmedAt)
	b.AssignedAt = toTimePtr(assignedAt)
	b.CompletedAt = toTimePtr(completedAt)
	b.CancelledAt = toTimePtr(cancelledAt)
	if cancelReason.Valid {
		b.CancelReason = &cancelReason.String
	}
	return &b, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, driverID *types.ID, cancelReason *string) (bool, error) {
	var d *string
	if driverID != nil {
		v := string(*driverID)
		d = &v
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings
		SET status = $1,
		    status_version = status_version + 1,
		    driver_id = CASE WHEN $1 = 'assigned' THEN $2
		                     WHEN $1 = 'confirmed' THEN NULL
		                     ELSE driver_id END,
		    confirmed_at = CASE WHEN $1 = 'confirmed' AND confirmed_at IS NULL THEN NOW() ELSE confirmed_at END,
		    assigned_at = CASE WHEN $1 = 'assigned' THEN NOW() ELSE assigned_at END,
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END,
		    cancelled_at = CASE WHEN $1 = 'cancelled' THEN NOW() ELSE cancelled_at END,
		    cancel_reason = CASE WHEN $1 = 'cancelled' THEN $6 ELSE cancel_reason END
		WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(to),
		d,
		string(id),
		string(from),
		version,
		cancelReason,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO booking_state_events (
			booking_id, from_status, to_status, actor_type, actor_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.BookingID),
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorType,
		toStringPtr(e.ActorID),
		e.CreatedAt,
	)
	return err
}

// UpcomingReturnLegs returns the return legs of live bookings whose return
// date falls in [from, to]. It satisfies dispatch.LegSource; drive-time
// estimates are left unset for the dispatch service to resolve.
func (s *Store) UpcomingReturnLegs(ctx context.Context, from, to time.Time) ([]dispatch.ReturnLeg, error) {
	rows, err := s.db.Query(ctx, `
		SELECT b.id, b.ref, b.customer_name, b.customer_phone,
		       b.return_date, b.return_time, b.dropoff_address,
		       b.driver_id, COALESCE(d.name, '')
		FROM bookings b
		LEFT JOIN drivers d ON d.id = b.driver_id
		WHERE b.return_trip
		  AND b.status IN ('pending', 'confirmed', 'assigned')
		  AND b.return_date >= $1 AND b.return_date <= $2
		ORDER BY b.return_date, b.return_time`,
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var legs []dispatch.ReturnLeg
	for rows.Next() {
		var leg dispatch.ReturnLeg
		var driverID sql.NullString
		err := rows.Scan(
			&leg.BookingID, &leg.BookingRef, &leg.CustomerName, &leg.CustomerPhone,
			&leg.ReturnDate, &leg.ReturnTime, &leg.PickupAddress,
			&driverID, &leg.DriverName,
		)
		if err != nil {
			return nil, err
		}
		leg.DriverAssigned = driverID.Valid
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}

func nullIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func toStringPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
