package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"car-auction/internal/infra/db"
	"car-auction/internal/infra/memstore"
	"car-auction/internal/infra/repository"
	"car-auction/internal/infra/uow"
	"car-auction/internal/pkg/config"
	"car-auction/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewPersistence,
	),
)

// Persistence exposes one store implementation under the shared ports.
type Persistence struct {
	fx.Out

	UnitOfWork      shared.UnitOfWork
	Auctions        shared.AuctionRepository
	Bids            shared.BidRepository
	PartitionEvents shared.PartitionEventRepository
	Vehicles        shared.VehicleRepository
}

func NewPersistence(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Persistence, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := NewDB(lc, cfg, logger)
		if err != nil {
			return Persistence{}, err
		}
		store := repository.NewStore(pool, logger)
		return Persistence{
			UnitOfWork:      uow.NewPostgresUoW(pool, logger),
			Auctions:        store.Auctions(),
			Bids:            store.Bids(),
			PartitionEvents: store.PartitionEvents(),
			Vehicles:        store.Vehicles(),
		}, nil
	case config.StoreDriverMemory:
		logger.Warn("インメモリストアを使用します。再起動でデータは失われます")
		store := memstore.New(logger)
		return Persistence{
			UnitOfWork:      store,
			Auctions:        store.Auctions(),
			Bids:            store.Bids(),
			PartitionEvents: store.PartitionEvents(),
			Vehicles:        store.Vehicles(),
		}, nil
	default:
		return Persistence{}, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// NewDB opens the pool and applies pending migrations before the app starts.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(context.Background(), pool, logger); err != nil {
		cleanup()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
