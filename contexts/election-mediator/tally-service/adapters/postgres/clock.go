package postgresadapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SystemClock satisfies the clock port with wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator satisfies the id generator port with random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) { return uuid.NewString(), nil }
