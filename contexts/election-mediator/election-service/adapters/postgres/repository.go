package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pericles/contexts/election-mediator/election-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/election-service/domain/errors"
	"pericles/contexts/election-mediator/election-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type electionModel struct {
	TenantID   string    `gorm:"column:tenant_id;primaryKey"`
	ElectionID string    `gorm:"column:election_id;primaryKey"`
	State      string    `gorm:"column:state"`
	Context    []byte    `gorm:"column:context;type:jsonb"`
	Manifest   []byte    `gorm:"column:manifest;type:jsonb"`
	Version    int64     `gorm:"column:version"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (electionModel) TableName() string { return "elections" }

type manifestModel struct {
	TenantID     string    `gorm:"column:tenant_id;primaryKey"`
	ManifestHash string    `gorm:"column:manifest_hash;primaryKey"`
	Document     []byte    `gorm:"column:document;type:jsonb"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (manifestModel) TableName() string { return "manifests" }

type outboxModel struct {
	OutboxID    string     `gorm:"column:id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload;type:jsonb"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string { return "election_outbox" }

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Repository is the postgres adapter for the election-service ports.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) SaveElection(ctx context.Context, election entities.Election) error {
	row := electionModel{
		TenantID:   election.TenantID,
		ElectionID: election.ElectionID,
		State:      string(election.State),
		Context:    election.Context,
		Manifest:   election.Manifest,
		Version:    election.Version,
		CreatedAt:  election.CreatedAt,
		UpdatedAt:  election.UpdatedAt,
	}
	// Submission is idempotent on election id: resubmitting replaces the
	// document and resets the lifecycle.
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "election_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"state":      row.State,
			"context":    row.Context,
			"manifest":   row.Manifest,
			"version":    row.Version,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("election_repo_save_failed", create.Error,
			"tenant_id", election.TenantID,
			"election_id", election.ElectionID,
		)
	}
	return nil
}

func (r *Repository) GetElection(ctx context.Context, tenantID string, electionID string) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", strings.TrimSpace(tenantID)).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("election_repo_get_failed", err,
			"tenant_id", tenantID,
			"election_id", electionID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateElectionState(
	ctx context.Context,
	tenantID string,
	electionID string,
	state entities.ElectionState,
	expectedVersion int64,
) (entities.Election, error) {
	now := time.Now().UTC()
	update := r.db.WithContext(ctx).Model(&electionModel{}).
		Where("tenant_id = ?", strings.TrimSpace(tenantID)).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Where("version = ?", expectedVersion).
		Updates(map[string]any{
			"state":      string(state),
			"version":    expectedVersion + 1,
			"updated_at": now,
		})
	if update.Error != nil {
		return entities.Election{}, r.logError("election_repo_update_state_failed", update.Error,
			"tenant_id", tenantID,
			"election_id", electionID,
		)
	}
	if update.RowsAffected == 0 {
		// Distinguish a missing row from a stale version.
		if _, err := r.GetElection(ctx, tenantID, electionID); err != nil {
			return entities.Election{}, err
		}
		return entities.Election{}, domainerrors.ErrVersionConflict
	}
	return r.GetElection(ctx, tenantID, electionID)
}

func (r *Repository) FindElections(
	ctx context.Context,
	tenantID string,
	filter ports.ElectionFilter,
	skip int,
	limit int,
) ([]entities.Election, error) {
	tx := r.db.WithContext(ctx).Model(&electionModel{}).
		Where("tenant_id = ?", strings.TrimSpace(tenantID))
	if filter.State != "" {
		tx = tx.Where("state = ?", string(filter.State))
	}
	if filter.ManifestHash != "" {
		tx = tx.Where("context ->> 'manifest_hash' = ?", filter.ManifestHash)
	}

	var rows []electionModel
	err := tx.Order("election_id ASC").Offset(skip).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_find_failed", err, "tenant_id", tenantID)
	}
	elections := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		elections = append(elections, row.toEntity())
	}
	return elections, nil
}

func (r *Repository) GetManifest(ctx context.Context, tenantID string, manifestHash string) (json.RawMessage, error) {
	var row manifestModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", strings.TrimSpace(tenantID)).
		Where("manifest_hash = ?", strings.TrimSpace(manifestHash)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrManifestNotFound
		}
		return nil, r.logError("election_repo_get_manifest_failed", err,
			"tenant_id", tenantID,
			"manifest_hash", manifestHash,
		)
	}
	return row.Document, nil
}

func (r *Repository) PutManifest(ctx context.Context, tenantID string, manifestHash string, manifest json.RawMessage) error {
	row := manifestModel{
		TenantID:     strings.TrimSpace(tenantID),
		ManifestHash: strings.TrimSpace(manifestHash),
		Document:     manifest,
		CreatedAt:    time.Now().UTC(),
	}
	// Manifests are immutable and content-addressed; re-registration is a no-op.
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "manifest_hash"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil && !isUniqueViolation(create.Error) {
		return r.logError("election_repo_put_manifest_failed", create.Error,
			"tenant_id", tenantID,
			"manifest_hash", manifestHash,
		)
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, message ports.OutboxMessage) error {
	row := outboxModel{
		OutboxID:  message.OutboxID,
		EventType: message.EventType,
		Payload:   message.Payload,
		Status:    outboxStatusPending,
		CreatedAt: message.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return r.logError("election_repo_outbox_append_failed", err, "outbox_id", message.OutboxID)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("election_repo_outbox_list_failed", err)
	}
	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt,
		}).Error
	if err != nil {
		return r.logError("election_repo_outbox_mark_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (m electionModel) toEntity() entities.Election {
	return entities.Election{
		ElectionID: m.ElectionID,
		TenantID:   m.TenantID,
		State:      entities.ElectionState(m.State),
		Context:    m.Context,
		Manifest:   m.Manifest,
		Version:    m.Version,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-mediator/election-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("election repository operation failed", fields...)
	return err
}
