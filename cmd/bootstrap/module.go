package bootstrap

import (
	"car-auction/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	SequenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
