package storage

import (
	"context"
	"time"

	"dataset-collector/models"
)

// HolidayWriter is the interface an optional holiday sink must satisfy.
type HolidayWriter interface {
	WriteHolidays(ctx context.Context, holidays []*models.Holiday) error
	CountHolidays(ctx context.Context, countryCode string) (int, error)
	Close() error
}

// ResponseCache stores HTTP response bodies by request key. A miss (including
// an expired entry) reports ok=false with a nil error.
type ResponseCache interface {
	Get(ctx context.Context, key string) (body []byte, ok bool, err error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Close() error
}
