package postgresadapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SystemClock supplies wall-clock time to the application layer.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator issues fresh identifiers for elections and outbox rows.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
