// README: Driver roster definitions.
package driver

import (
	"time"

	"shuttle/internal/types"
)

type Driver struct {
	ID        types.ID
	Name      string
	Phone     string
	Vehicle   string
	Active    bool
	CreatedAt time.Time
}
