// README: Fare rate store backed by PostgreSQL.
package fare

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoRates means no active row exists in fare_rates; callers fall back
// to DefaultRates.
var ErrNoRates = errors.New("no active fare rates")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) ActiveRates(ctx context.Context) (Rates, error) {
	row := s.db.QueryRow(ctx, `
		SELECT minimum_fare_cents, included_km, per_km_cents,
		       airport_fee_cents, extra_passenger_cents,
		       oversized_luggage_cents, vip_fee_cents, currency
		FROM fare_rates
		WHERE active
		ORDER BY effective_from DESC
		LIMIT 1`,
	)

	var r Rates
	err := row.Scan(
		&r.MinimumFareCents, &r.IncludedKm, &r.PerKmCents,
		&r.AirportFeeCents, &r.ExtraPassengerCents,
		&r.OversizedLuggageCents, &r.VIPFeeCents, &r.Currency,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Rates{}, ErrNoRates
	}
	if err != nil {
		return Rates{}, err
	}
	return r, nil
}
