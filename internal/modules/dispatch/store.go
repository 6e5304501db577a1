// README: Drive-time estimate cache backed by Redis.
package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const driveTimeKeyPrefix = "dispatch:drivetime:%s"

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

// CachedDriveMinutes returns the cached base->address estimate, and
// whether one was present.
func (s *Store) CachedDriveMinutes(ctx context.Context, address string) (float64, bool, error) {
	val, err := s.redis.Get(ctx, driveTimeKey(address)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	m, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, err
	}
	return m, true, nil
}

func (s *Store) CacheDriveMinutes(ctx context.Context, address string, minutes float64) error {
	return s.redis.Set(ctx, driveTimeKey(address), strconv.FormatFloat(minutes, 'f', 2, 64), s.ttl).Err()
}

func driveTimeKey(address string) string {
	return fmt.Sprintf(driveTimeKeyPrefix, strings.ToLower(strings.TrimSpace(address)))
}
