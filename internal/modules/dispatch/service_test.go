package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"shuttle/internal/config"
)

// fakeLegSource is a test double for LegSource.
type fakeLegSource struct {
	legs []ReturnLeg
	err  error
}

func (f fakeLegSource) UpcomingReturnLegs(_ context.Context, _, _ time.Time) ([]ReturnLeg, error) {
	return f.legs, f.err
}

// fakeEstimator is a test double for DriveTimeEstimator.
type fakeEstimator struct {
	minutes map[string]float64
	err     error
	calls   int
}

func (f *fakeEstimator) DriveMinutes(_ context.Context, _, destination string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.minutes[destination], nil
}

func testDispatchConfig() config.DispatchConfig {
	return config.DispatchConfig{
		TickSeconds:   45,
		WindowDays:    7,
		UrgentMinutes: 240,
		BaseAddress:   "12 Ascot Road, Mangere, Auckland",
		Timezone:      "UTC",
	}
}

func TestQueue_ResolvesEstimatesAndRanks(t *testing.T) {
	legA := legDepartingIn("a", 30, nil)
	legA.PickupAddress = "far away"
	legB := legDepartingIn("b", 300, nil)
	legB.PickupAddress = "near"

	est := &fakeEstimator{minutes: map[string]float64{"far away": 45, "near": 10}}
	svc, err := NewService(fakeLegSource{legs: []ReturnLeg{legA, legB}}, est, nil, testDispatchConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	results, diags, err := svc.Queue(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// leg a: departs in 30, 45 min drive -> overdue by 15, ranks first
	if results[0].Leg.BookingID != "a" {
		t.Errorf("expected leg a first, got %s", results[0].Leg.BookingID)
	}
	if results[0].Tier != TierOverdue || results[0].MinutesUntilLeave != -15 {
		t.Errorf("leg a: tier=%s minutes=%f, want overdue/-15", results[0].Tier, results[0].MinutesUntilLeave)
	}
	if results[0].DegradedEstimate || results[1].DegradedEstimate {
		t.Error("resolved estimates should not be degraded")
	}
	if est.calls != 2 {
		t.Errorf("estimator calls = %d, want 2", est.calls)
	}
}

func TestQueue_EstimatorFailureDegradesLeg(t *testing.T) {
	leg := legDepartingIn("a", 90, nil)
	leg.PickupAddress = "unroutable"

	est := &fakeEstimator{err: errors.New("maps down")}
	svc, err := NewService(fakeLegSource{legs: []ReturnLeg{leg}}, est, nil, testDispatchConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	results, _, err := svc.Queue(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Queue should not fail when the estimator is down: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].DegradedEstimate {
		t.Error("expected a degraded estimate flag")
	}
	if results[0].MinutesUntilLeave != 90 {
		t.Errorf("MinutesUntilLeave = %f, want 90 (zero drive time)", results[0].MinutesUntilLeave)
	}
}

func TestQueue_KeepsExistingEstimates(t *testing.T) {
	leg := legDepartingIn("a", 90, minutes(25))

	est := &fakeEstimator{}
	svc, err := NewService(fakeLegSource{legs: []ReturnLeg{leg}}, est, nil, testDispatchConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, _, err := svc.Queue(context.Background(), testNow); err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if est.calls != 0 {
		t.Errorf("estimator called %d times for a leg that already had an estimate", est.calls)
	}
}

func TestUrgent_FiltersToWindow(t *testing.T) {
	closeLeg := legDepartingIn("close", 100, minutes(10))
	relaxedLeg := legDepartingIn("relaxed", 600, minutes(10))

	svc, err := NewService(fakeLegSource{legs: []ReturnLeg{closeLeg, relaxedLeg}}, &fakeEstimator{}, nil, testDispatchConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	results, _, err := svc.Urgent(context.Background(), testNow)
	if err != nil {
		t.Fatalf("Urgent: %v", err)
	}
	if len(results) != 1 || results[0].Leg.BookingID != "close" {
		t.Fatalf("expected only the close leg, got %d results", len(results))
	}
}

func TestNewService_BadTimezone(t *testing.T) {
	cfg := testDispatchConfig()
	cfg.Timezone = "Mars/Olympus_Mons"
	if _, err := NewService(fakeLegSource{}, &fakeEstimator{}, nil, cfg); err == nil {
		t.Error("expected an error for an unknown timezone")
	}
}
