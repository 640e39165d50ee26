package ports

import (
	"context"
	"encoding/json"
	"time"

	"pericles/contexts/election-mediator/election-service/domain/entities"
)

// ElectionFilter narrows Find scans. Zero values match everything inside the
// tenant scope.
type ElectionFilter struct {
	State        entities.ElectionState
	ManifestHash string
}

// ElectionRepository is the tenant-scoped document store owning persisted
// elections. UpdateElectionState is a compare-and-swap on the row version so
// concurrent transitions surface as conflicts instead of silent lost writes.
type ElectionRepository interface {
	SaveElection(ctx context.Context, election entities.Election) error
	GetElection(ctx context.Context, tenantID string, electionID string) (entities.Election, error)
	UpdateElectionState(
		ctx context.Context,
		tenantID string,
		electionID string,
		state entities.ElectionState,
		expectedVersion int64,
	) (entities.Election, error)
	FindElections(
		ctx context.Context,
		tenantID string,
		filter ElectionFilter,
		skip int,
		limit int,
	) ([]entities.Election, error)
}

// ManifestStore resolves immutable manifests by their crypto hash.
type ManifestStore interface {
	GetManifest(ctx context.Context, tenantID string, manifestHash string) (json.RawMessage, error)
	PutManifest(ctx context.Context, tenantID string, manifestHash string, manifest json.RawMessage) error
}

// EventEnvelope is the event shape relayed from the outbox to the bus.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SourceService string          `json:"source_service"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SchemaVersion int             `json:"schema_version"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}

// OutboxMessage is a pending event row persisted next to the state change
// that produced it.
type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, message OutboxMessage) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
