package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"pericles/contexts/election-mediator/election-service/domain/entities"
	"pericles/contexts/election-mediator/election-service/ports"
)

// appendEvent writes a state-change audit event to the outbox. Outbox wiring
// is optional; mediator deployments without a relay simply skip emission.
// Event failures never fail the originating command.
func (uc ElectionUseCase) appendEvent(
	ctx context.Context,
	logger *slog.Logger,
	eventType string,
	election entities.Election,
	data map[string]any,
) {
	if uc.Outbox == nil {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return
	}
	envelope := ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		SourceService: "election-service",
		OccurredAt:    uc.now(),
		SchemaVersion: 1,
		PartitionKey:  election.ElectionID,
		Data:          payload,
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	if err := uc.Outbox.AppendOutbox(ctx, ports.OutboxMessage{
		OutboxID:  eventID,
		EventType: eventType,
		Payload:   raw,
		CreatedAt: envelope.OccurredAt,
	}); err != nil {
		logger.Error("election outbox append failed",
			"event", "election_outbox_append_failed",
			"module", "election-mediator/election-service",
			"layer", "application",
			"election_id", election.ElectionID,
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}
