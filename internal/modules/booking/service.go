// README: Booking service implements state transitions, quoting, and persistence.
package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"shuttle/internal/modules/fare"
	"shuttle/internal/types"
)

var (
	ErrInvalidState = errors.New("invalid state transition")
	ErrNotFound     = errors.New("booking not found")
	ErrConflict     = errors.New("booking state conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrNoDriver     = errors.New("driver not found")
)

// Quoter prices a trip before the booking is persisted.
type Quoter interface {
	Quote(ctx context.Context, req fare.Request) (fare.Breakdown, error)
}

// DriverDirectory answers whether a driver exists and is active.
type DriverDirectory interface {
	Exists(ctx context.Context, id types.ID) (bool, error)
}

// Repository is the persistence surface the service needs. *Store
// implements it against Postgres.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id types.ID) (*Booking, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, driverID *types.ID, cancelReason *string) (bool, error)
	AppendEvent(ctx context.Context, e *Event) error
}

type Service struct {
	repo    Repository
	quoter  Quoter
	drivers DriverDirectory
}

func NewService(repo Repository, quoter Quoter, drivers DriverDirectory) *Service {
	return &Service{repo: repo, quoter: quoter, drivers: drivers}
}

type CreateCommand struct {
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
	PickupDate        string
	PickupTime        string
	ReturnDate        string
	ReturnTime        string
}

type ConfirmCommand struct {
	BookingID types.ID
}

type AssignCommand struct {
	BookingID types.ID
	DriverID  types.ID
}

type UnassignCommand struct {
	BookingID types.ID
}

type CompleteCommand struct {
	BookingID types.ID
}

type CancelCommand struct {
	BookingID types.ID
	ActorType string
	Reason    string
}

// Create validates the request, prices it, and persists the booking with
// its full breakdown. Fare errors abort the booking; no booking is ever
// stored without a complete price.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Booking, error) {
	if strings.TrimSpace(cmd.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrBadRequest)
	}
	if err := validateDateTime(cmd.PickupDate, cmd.PickupTime); err != nil {
		return nil, fmt.Errorf("%w: pickup %v", ErrBadRequest, err)
	}
	if cmd.IsReturnTrip {
		if err := validateDateTime(cmd.ReturnDate, cmd.ReturnTime); err != nil {
			return nil, fmt.Errorf("%w: return %v", ErrBadRequest, err)
		}
	}

	breakdown, err := s.quoter.Quote(ctx, fare.Request{
		ServiceType:       cmd.ServiceType,
		PickupAddress:     cmd.PickupAddress,
		AdditionalPickups: cmd.AdditionalPickups,
		DropoffAddress:    cmd.DropoffAddress,
		Passengers:        cmd.Passengers,
		VIPAirportPickup:  cmd.VIPAirportPickup,
		OversizedLuggage:  cmd.OversizedLuggage,
		IsReturnTrip:      cmd.IsReturnTrip,
	})
	if err != nil {
		return nil, err
	}

	id := newID()
	now := time.Now()
	b := &Booking{
		ID:                id,
		Ref:               refFromID(id),
		CustomerName:      strings.TrimSpace(cmd.CustomerName),
		CustomerPhone:     strings.TrimSpace(cmd.CustomerPhone),
		CustomerEmail:     strings.TrimSpace(cmd.CustomerEmail),
		ServiceType:       cmd.ServiceType,
		PickupAddress:     strings.TrimSpace(cmd.PickupAddress),
		AdditionalPickups: nonBlank(cmd.AdditionalPickups),
		DropoffAddress:    strings.TrimSpace(cmd.DropoffAddress),
		Passengers:        cmd.Passengers,
		VIPAirportPickup:  cmd.VIPAirportPickup,
		OversizedLuggage:  cmd.OversizedLuggage,
		IsReturnTrip:      cmd.IsReturnTrip,
		PickupDate:        cmd.PickupDate,
		PickupTime:        cmd.PickupTime,
		ReturnDate:        cmd.ReturnDate,
		ReturnTime:        cmd.ReturnTime,
		Status:            StatusPending,
		StatusVersion:     0,
		Fare:              breakdown,
		CreatedAt:         now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	_ = s.repo.AppendEvent(ctx, &Event{
		BookingID:  id,
		FromStatus: StatusNone,
		ToStatus:   StatusPending,
		ActorType:  "customer",
		CreatedAt:  now,
	})
	return b, nil
}

func (s *Service) Confirm(ctx context.Context, cmd ConfirmCommand) error {
	return s.transition(ctx, cmd.BookingID, StatusConfirmed, "operator", nil, nil)
}

func (s *Service) AssignDriver(ctx context.Context, cmd AssignCommand) error {
	if cmd.DriverID == "" {
		return fmt.Errorf("%w: driver id is required", ErrBadRequest)
	}
	if s.drivers != nil {
		ok, err := s.drivers.Exists(ctx, cmd.DriverID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoDriver
		}
	}
	return s.transition(ctx, cmd.BookingID, StatusAssigned, "operator", &cmd.DriverID, nil)
}

// Unassign moves an assigned booking back to confirmed so another driver
// can take it.
func (s *Service) Unassign(ctx context.Context, cmd UnassignCommand) error {
	return s.transition(ctx, cmd.BookingID, StatusConfirmed, "operator", nil, nil)
}

func (s *Service) Complete(ctx context.Context, cmd CompleteCommand) error {
	return s.transition(ctx, cmd.BookingID, StatusCompleted, "driver", nil, nil)
}

func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	actor := cmd.ActorType
	if actor == "" {
		actor = "customer"
	}
	var reason *string
	if r := strings.TrimSpace(cmd.Reason); r != "" {
		reason = &r
	}
	return s.transition(ctx, cmd.BookingID, StatusCancelled, actor, nil, reason)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) transition(ctx context.Context, id types.ID, to Status, actorType string, driverID *types.ID, cancelReason *string) error {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status, to) {
		return ErrInvalidState
	}
	ok, err := s.repo.UpdateStatus(ctx, b.ID, b.Status, to, b.StatusVersion, driverID, cancelReason)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	_ = s.repo.AppendEvent(ctx, &Event{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   to,
		ActorType:  actorType,
		ActorID:    driverID,
		CreatedAt:  time.Now(),
	})
	return nil
}

func validateDateTime(date, clock string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("date %q is not YYYY-MM-DD", date)
	}
	if _, err := time.Parse("15:04", clock); err != nil {
		return fmt.Errorf("time %q is not HH:MM", clock)
	}
	return nil
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}

// refFromID derives the short reference ops staff read out on the phone.
func refFromID(id types.ID) string {
	return "SB-" + strings.ToUpper(string(id[:6]))
}
