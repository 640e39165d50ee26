package tallyservice

import (
	"log/slog"

	cryptoadapter "pericles/contexts/election-mediator/tally-service/adapters/crypto"
	httpadapter "pericles/contexts/election-mediator/tally-service/adapters/http"
	"pericles/contexts/election-mediator/tally-service/adapters/memory"
	"pericles/contexts/election-mediator/tally-service/application/commands"
	"pericles/contexts/election-mediator/tally-service/application/queries"
	"pericles/contexts/election-mediator/tally-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Tallies ports.TallyRepository
	Engine  ports.TallyEngine
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	engine := deps.Engine
	if engine == nil {
		engine = cryptoadapter.NewEngine()
	}
	tallyUseCase := commands.TallyUseCase{
		Tallies: deps.Tallies,
		Engine:  engine,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	tallyQueries := queries.TallyQueries{
		Tallies: deps.Tallies,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Tallies: tallyUseCase,
			Queries: tallyQueries,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Tallies: store,
		Clock:   store,
		IDGen:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
