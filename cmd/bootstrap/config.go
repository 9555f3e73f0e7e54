package bootstrap

import (
	"log/slog"

	"car-auction/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logEffectiveConfig),
)

// DB や Redis の接続情報は出さない
func logEffectiveConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("起動設定",
		"store_driver", cfg.Store.Driver,
		"sequence_backend", cfg.Redis.SequenceBackend,
		"default_region", cfg.Simulation.DefaultRegion,
		"heal_timeout", cfg.Simulation.HealTimeout,
		"reconcile_on_heal", cfg.Simulation.ReconcileOnHeal,
		"reconcile_concurrency", cfg.Simulation.ReconcileConcurrency)
}
