package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"pericles/contexts/election-mediator/tally-service/domain/entities"
	domainerrors "pericles/contexts/election-mediator/tally-service/domain/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tallyModel struct {
	TenantID  string    `gorm:"column:tenant_id;primaryKey"`
	TallyID   string    `gorm:"column:tally_id;primaryKey"`
	Document  []byte    `gorm:"column:document;type:jsonb"`
	Version   int64     `gorm:"column:version"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (tallyModel) TableName() string { return "tallies" }

type tallyResultModel struct {
	TenantID  string    `gorm:"column:tenant_id;primaryKey"`
	TallyID   string    `gorm:"column:tally_id;primaryKey"`
	Document  []byte    `gorm:"column:document;type:jsonb"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (tallyResultModel) TableName() string { return "tally_results" }

// Repository is the postgres adapter for the tally-service repository port.
// Accumulators and results are stored as their versioned wire envelopes so the
// rows double as audit artifacts.
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

func (r *Repository) SaveTally(ctx context.Context, tally entities.CiphertextTally) error {
	document, err := tally.Encode()
	if err != nil {
		return r.logError("tally_repo_encode_failed", err,
			"tenant_id", tally.TenantID,
			"tally_id", tally.ObjectID,
		)
	}
	row := tallyModel{
		TenantID:  tally.TenantID,
		TallyID:   tally.ObjectID,
		Document:  document,
		Version:   tally.Version,
		CreatedAt: tally.CreatedAt,
		UpdatedAt: tally.UpdatedAt,
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "tally_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"document":   row.Document,
			"version":    row.Version,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("tally_repo_save_failed", create.Error,
			"tenant_id", tally.TenantID,
			"tally_id", tally.ObjectID,
		)
	}
	return nil
}

func (r *Repository) GetTally(ctx context.Context, tenantID, tallyID string) (entities.CiphertextTally, error) {
	var row tallyModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", strings.TrimSpace(tenantID)).
		Where("tally_id = ?", strings.TrimSpace(tallyID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.CiphertextTally{}, domainerrors.ErrTallyNotFound
		}
		return entities.CiphertextTally{}, r.logError("tally_repo_get_failed", err,
			"tenant_id", tenantID,
			"tally_id", tallyID,
		)
	}
	tally, err := entities.DecodeTally(row.Document)
	if err != nil {
		return entities.CiphertextTally{}, r.logError("tally_repo_decode_failed", err,
			"tenant_id", tenantID,
			"tally_id", tallyID,
		)
	}
	tally.TenantID = row.TenantID
	tally.Version = row.Version
	tally.CreatedAt = row.CreatedAt
	tally.UpdatedAt = row.UpdatedAt
	return tally, nil
}

func (r *Repository) SaveResult(ctx context.Context, tenantID string, result entities.PlaintextTally) error {
	document, err := json.Marshal(result)
	if err != nil {
		return r.logError("tally_repo_result_encode_failed", err,
			"tenant_id", tenantID,
			"tally_id", result.ObjectID,
		)
	}
	row := tallyResultModel{
		TenantID:  strings.TrimSpace(tenantID),
		TallyID:   result.ObjectID,
		Document:  document,
		CreatedAt: time.Now().UTC(),
	}
	// Re-decrypting the same accumulator with the same shares yields the same
	// result, so the latest write wins.
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "tally_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"document": row.Document,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("tally_repo_result_save_failed", create.Error,
			"tenant_id", tenantID,
			"tally_id", result.ObjectID,
		)
	}
	return nil
}

func (r *Repository) GetResult(ctx context.Context, tenantID, tallyID string) (entities.PlaintextTally, error) {
	var row tallyResultModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", strings.TrimSpace(tenantID)).
		Where("tally_id = ?", strings.TrimSpace(tallyID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.PlaintextTally{}, domainerrors.ErrTallyNotFound
		}
		return entities.PlaintextTally{}, r.logError("tally_repo_result_get_failed", err,
			"tenant_id", tenantID,
			"tally_id", tallyID,
		)
	}
	var result entities.PlaintextTally
	if err := json.Unmarshal(row.Document, &result); err != nil {
		return entities.PlaintextTally{}, r.logError("tally_repo_result_decode_failed", err,
			"tenant_id", tenantID,
			"tally_id", tallyID,
		)
	}
	return result, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-mediator/tally-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("tally repository operation failed", fields...)
	return err
}
