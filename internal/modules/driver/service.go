// README: Driver service for roster management and assignment lookups.
package driver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"shuttle/internal/types"
)

var (
	ErrNotFound   = errors.New("driver not found")
	ErrBadRequest = errors.New("bad request")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	Name    string
	Phone   string
	Vehicle string
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (types.ID, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return "", fmt.Errorf("%w: driver name is required", ErrBadRequest)
	}
	d := &Driver{
		ID:        newID(),
		Name:      strings.TrimSpace(cmd.Name),
		Phone:     strings.TrimSpace(cmd.Phone),
		Vehicle:   strings.TrimSpace(cmd.Vehicle),
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := s.store.Create(ctx, d); err != nil {
		return "", err
	}
	return d.ID, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Driver, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Driver, error) {
	return s.store.List(ctx)
}

func (s *Service) SetActive(ctx context.Context, id types.ID, active bool) error {
	return s.store.SetActive(ctx, id, active)
}

// Exists reports whether an active driver with the id is on the roster.
// It satisfies the booking module's DriverDirectory.
func (s *Service) Exists(ctx context.Context, id types.ID) (bool, error) {
	return s.store.ExistsActive(ctx, id)
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}
