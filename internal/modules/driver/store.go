// README: Driver store backed by PostgreSQL.
package driver

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shuttle/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, d *Driver) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO drivers (id, name, phone, vehicle, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(d.ID), d.Name, d.Phone, d.Vehicle, d.Active, d.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Driver, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, phone, vehicle, active, created_at
		FROM drivers
		WHERE id = $1`, string(id),
	)
	var d Driver
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.Vehicle, &d.Active, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) List(ctx context.Context) ([]Driver, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, phone, vehicle, active, created_at
		FROM drivers
		ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []Driver
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.Vehicle, &d.Active, &d.CreatedAt); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (s *Store) SetActive(ctx context.Context, id types.ID, active bool) error {
	tag, err := s.db.Exec(ctx, `UPDATE drivers SET active = $1 WHERE id = $2`, active, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ExistsActive(ctx context.Context, id types.ID) (bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM drivers WHERE id = $1 AND active)`, string(id),
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
