package components

import (
	"context"
	"log/slog"

	"car-auction/internal/domain/region"
	"car-auction/internal/infra/simulator"
	"car-auction/internal/pkg/clock"
	"car-auction/internal/pkg/config"
	"car-auction/internal/usecase/commands"
	"car-auction/internal/usecase/coordinator"
	"car-auction/internal/usecase/ordering"
	"car-auction/internal/usecase/queries"
	"car-auction/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecasePartitionModule,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	ordering.NewSequenceAssigner,
	NewReconcileOptions,
)

var usecasePartitionModule = fx.Module("usecase/partition",
	fx.Provide(
		fx.Annotate(
			NewSimulator,
			fx.As(new(coordinator.PartitionSource)),
			fx.As(new(commands.PartitionSimulator)),
			fx.As(new(commands.CallerRegion)),
			fx.As(new(queries.PartitionObserver)),
		),
		fx.Annotate(
			coordinator.New,
			fx.As(new(commands.RegionCoordinator)),
			fx.As(new(commands.PartitionStatusUpdater)),
			fx.As(new(queries.StatusSource)),
		),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuctionService,
		commands.NewVehicleUseCase,
		NewPartitionUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAuctionQueries,
		queries.NewPartitionQueries,
		queries.NewVehicleQueries,
	),
)

// NewSimulator stops pending auto-heal timers on shutdown.
func NewSimulator(lc fx.Lifecycle, cfg config.Config, events shared.PartitionEventRepository, clk clock.Clock, logger *slog.Logger) (*simulator.Simulator, error) {
	def, err := region.Parse(cfg.Simulation.DefaultRegion)
	if err != nil {
		return nil, err
	}
	sim := simulator.New(events, clk, logger, def)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sim.Stop()
			return nil
		},
	})
	return sim, nil
}

func NewPartitionUseCase(
	sim commands.PartitionSimulator,
	updater commands.PartitionStatusUpdater,
	cfg config.Config,
	logger *slog.Logger,
) commands.PartitionCommands {
	return commands.NewPartitionUseCase(sim, updater, cfg.Simulation.HealTimeout, logger)
}

func NewReconcileOptions(cfg config.Config) commands.ReconcileOptions {
	return commands.ReconcileOptions{
		OnHeal:      cfg.Simulation.ReconcileOnHeal,
		Concurrency: cfg.Simulation.ReconcileConcurrency,
	}
}
