package electionservice

import (
	"log/slog"

	httpadapter "pericles/contexts/election-mediator/election-service/adapters/http"
	"pericles/contexts/election-mediator/election-service/adapters/memory"
	"pericles/contexts/election-mediator/election-service/application/commands"
	"pericles/contexts/election-mediator/election-service/application/queries"
	"pericles/contexts/election-mediator/election-service/domain/entities"
	"pericles/contexts/election-mediator/election-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Elections ports.ElectionRepository
	Manifests ports.ManifestStore
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	electionUseCase := commands.ElectionUseCase{
		Elections: deps.Elections,
		Manifests: deps.Manifests,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	contextUseCase := commands.ContextUseCase{
		Manifests: deps.Manifests,
		Logger:    deps.Logger,
	}
	electionQueries := queries.ElectionQueries{
		Elections: deps.Elections,
		Manifests: deps.Manifests,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Elections: electionUseCase,
			Contexts:  contextUseCase,
			Queries:   electionQueries,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Election, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Elections: store,
		Manifests: store,
		Outbox:    store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
