package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"car-auction/internal/infra/sequence"
	"car-auction/internal/pkg/config"
	"car-auction/internal/usecase/ordering"
	"car-auction/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var SequenceModule = fx.Module("sequence",
	fx.Provide(
		NewSequenceCounter,
	),
)

// NewSequenceCounter picks where bid sequences come from. The redis backend
// lets several instances share one counter per auction.
func NewSequenceCounter(lc fx.Lifecycle, cfg config.Config, bids shared.BidRepository, logger *slog.Logger) (shared.SequenceCounter, error) {
	if cfg.Redis.SequenceBackend != config.SequenceBackendRedis {
		return ordering.NewStoreCounter(bids), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	logger.Info("Redis でシーケンスを採番します", "addr", cfg.Redis.Addr)
	return sequence.NewRedisCounter(client, bids, logger), nil
}
