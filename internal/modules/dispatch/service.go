// README: Dispatch service assembles the return queue and keeps drive-time estimates fresh.
package dispatch

import (
	"context"
	"log"
	"time"

	"shuttle/internal/config"
)

// LegSource provides the return legs awaiting dispatch in a time window.
type LegSource interface {
	UpcomingReturnLegs(ctx context.Context, from, to time.Time) ([]ReturnLeg, error)
}

// DriveTimeEstimator returns estimated driving minutes between two
// addresses. The dispatch service only ever asks from the ops base.
type DriveTimeEstimator interface {
	DriveMinutes(ctx context.Context, origin, destination string) (float64, error)
}

type Service struct {
	legs      LegSource
	estimator DriveTimeEstimator
	store     *Store // nil disables the estimate cache
	cfg       config.DispatchConfig
	loc       *time.Location
}

func NewService(legs LegSource, estimator DriveTimeEstimator, store *Store, cfg config.DispatchConfig) (*Service, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return &Service{legs: legs, estimator: estimator, store: store, cfg: cfg, loc: loc}, nil
}

// Queue returns the ranked return queue for the configured display window,
// plus diagnostics for any excluded records. Estimate lookups that fail
// leave the leg classified with a degraded estimate rather than dropping
// it; the queue must never blank out because routing is down.
func (s *Service) Queue(ctx context.Context, now time.Time) ([]Result, []Diagnostic, error) {
	from := now.Add(-24 * time.Hour) // keep overdue legs visible
	to := now.AddDate(0, 0, s.cfg.WindowDays)

	legs, err := s.legs.UpcomingReturnLegs(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}

	for i := range legs {
		if legs[i].DriveMinutesFromBase != nil || legs[i].PickupAddress == "" {
			continue
		}
		if m, ok := s.resolveDriveMinutes(ctx, legs[i].PickupAddress); ok {
			legs[i].DriveMinutesFromBase = &m
		}
	}

	results, diags := Classify(legs, now, s.loc)
	return WithinDays(results, now, s.cfg.WindowDays), diags, nil
}

// Urgent returns the subset of the queue within the urgent window.
func (s *Service) Urgent(ctx context.Context, now time.Time) ([]Result, []Diagnostic, error) {
	results, diags, err := s.Queue(ctx, now)
	if err != nil {
		return nil, nil, err
	}
	return UrgentWindow(results, float64(s.cfg.UrgentMinutes)), diags, nil
}

func (s *Service) resolveDriveMinutes(ctx context.Context, destination string) (float64, bool) {
	if s.store != nil {
		if m, ok, err := s.store.CachedDriveMinutes(ctx, destination); err == nil && ok {
			return m, true
		}
	}
	m, err := s.estimator.DriveMinutes(ctx, s.cfg.BaseAddress, destination)
	if err != nil {
		log.Printf("dispatch: drive estimate for %q failed: %v", destination, err)
		return 0, false
	}
	if s.store != nil {
		if err := s.store.CacheDriveMinutes(ctx, destination, m); err != nil {
			log.Printf("dispatch: caching estimate for %q failed: %v", destination, err)
		}
	}
	return m, true
}

// RunQueueRefresher recomputes the queue on the ops polling cadence so the
// drive-time cache stays warm between dashboard requests.
func (s *Service) RunQueueRefresher(ctx context.Context) {
	tick := time.Duration(s.cfg.TickSeconds) * time.Second
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, _, err := s.Queue(ctx, time.Now()); err != nil {
				log.Printf("dispatch: queue refresh failed: %v", err)
			}
		}
	}
}
