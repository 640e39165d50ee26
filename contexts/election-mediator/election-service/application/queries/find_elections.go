package queries

import (
	"context"
	"strings"

	domainerrors "pericles/contexts/election-mediator/election-service/domain/errors"
	"pericles/contexts/election-mediator/election-service/domain/entities"
	"pericles/contexts/election-mediator/election-service/ports"
)

const (
	defaultFindLimit = 100
	maxFindLimit     = 1000
)

// FindElectionsQuery scans the tenant's elections with an optional filter and
// skip/limit pagination. Ordering follows the repository's scan order.
type FindElectionsQuery struct {
	TenantID     string
	State        string
	ManifestHash string
	Skip         int
	Limit        int
}

// FindElections returns elections matching the filter. An empty filter
// returns everything in the tenant scope.
func (q ElectionQueries) FindElections(ctx context.Context, query FindElectionsQuery) ([]entities.Election, error) {
	tenantID := strings.TrimSpace(query.TenantID)
	if tenantID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	if query.Skip < 0 || query.Limit < 0 {
		return nil, domainerrors.ErrInvalidRequest
	}

	filter := ports.ElectionFilter{
		ManifestHash: strings.TrimSpace(query.ManifestHash),
	}
	if state := strings.TrimSpace(query.State); state != "" {
		electionState := entities.ElectionState(state)
		if !electionState.Valid() {
			return nil, domainerrors.ErrInvalidRequest
		}
		filter.State = electionState
	}

	limit := query.Limit
	if limit == 0 {
		limit = defaultFindLimit
	}
	if limit > maxFindLimit {
		limit = maxFindLimit
	}
	return q.Elections.FindElections(ctx, tenantID, filter, query.Skip, limit)
}
