package queries

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "pericles/contexts/election-mediator/election-service/domain/errors"
	"pericles/contexts/election-mediator/election-service/domain/entities"
	"pericles/contexts/election-mediator/election-service/ports"
)

// ElectionQueries serves read-side lookups over the election repository.
type ElectionQueries struct {
	Elections ports.ElectionRepository
	Manifests ports.ManifestStore
	Logger    *slog.Logger
}

// GetElection returns the election by exact id within the tenant scope.
func (q ElectionQueries) GetElection(ctx context.Context, tenantID string, electionID string) (entities.Election, error) {
	tenantID = strings.TrimSpace(tenantID)
	electionID = strings.TrimSpace(electionID)
	if tenantID == "" || electionID == "" {
		return entities.Election{}, domainerrors.ErrInvalidRequest
	}
	return q.Elections.GetElection(ctx, tenantID, electionID)
}

// GetManifest returns a registered manifest by its crypto hash.
func (q ElectionQueries) GetManifest(ctx context.Context, tenantID string, manifestHash string) ([]byte, error) {
	tenantID = strings.TrimSpace(tenantID)
	manifestHash = strings.TrimSpace(manifestHash)
	if tenantID == "" || manifestHash == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return q.Manifests.GetManifest(ctx, tenantID, manifestHash)
}
