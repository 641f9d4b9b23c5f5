package fx

import (
	"database/sql"

	"clutchly/internal/api"
	"clutchly/internal/coach"
	"clutchly/internal/config"
	"clutchly/internal/database"
	"clutchly/internal/db"
	"clutchly/internal/logger"
	"clutchly/internal/repository"
	"clutchly/internal/scheduler"
	"clutchly/internal/server"
	"clutchly/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(
		fx.Annotate(repository.NewPlayerRepository, fx.As(new(service.PlayerStore), new(scheduler.StalePlayerStore))),
		fx.Annotate(repository.NewChampionStatsRepository, fx.As(new(service.ChampionStatsStore))),
		fx.Annotate(repository.NewCardRepository, fx.As(new(service.CardStore))),
		fx.Annotate(repository.NewWaitlistRepository, fx.As(new(service.WaitlistStore))),
	),
	// riot api
	fx.Provide(api.NewCache),
	fx.Provide(fx.Annotate(api.ProvideRiotClient, fx.As(new(service.RiotAPI)))),
	fx.Provide(fx.Annotate(api.NewPacer, fx.As(new(service.Pacer)))),
	// cards
	fx.Provide(fx.Annotate(coach.ProvideGenerator, fx.As(new(service.CardGenerator)))),
	// svc
	fx.Provide(
		fx.Annotate(service.NewSyncService, fx.As(fx.Self(), new(scheduler.Syncer))),
		service.NewPlayerService,
		service.NewCardService,
		service.NewWaitlistService,
	),
	fx.Provide(scheduler.New),
	// server
	fx.Provide(server.ProvideCoachServer),
)
