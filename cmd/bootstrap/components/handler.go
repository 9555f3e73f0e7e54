package components

import (
	"car-auction/internal/handler"
	"car-auction/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuctionHandler,
		api.NewPartitionHandler,
		api.NewVehicleHandler,
	),
	fx.Invoke(handler.NewRouter),
)
