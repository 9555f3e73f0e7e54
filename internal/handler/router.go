package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"car-auction/internal/handler/api"
	"car-auction/internal/handler/middleware"
	"car-auction/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	auctionHandler *api.AuctionHandler,
	partitionHandler *api.PartitionHandler,
	vehicleHandler *api.VehicleHandler,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, auctionHandler, partitionHandler, vehicleHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
	engine.Use(middleware.CallerRegion())
}

func setupRoutes(engine *gin.Engine, auctionHandler *api.AuctionHandler, partitionHandler *api.PartitionHandler, vehicleHandler *api.VehicleHandler) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auctions := apiGroup.Group("/auctions")
		{
			addRoutes(auctions, []route{
				{Method: http.MethodPost, Path: "", Handler: auctionHandler.CreateAuction},
				{Method: http.MethodGet, Path: "/:id", Handler: auctionHandler.GetAuction},
				{Method: http.MethodPost, Path: "/:id/bids", Handler: auctionHandler.PlaceBid},
				{Method: http.MethodGet, Path: "/:id/bids", Handler: auctionHandler.ListBids},
				{Method: http.MethodPost, Path: "/:id/reconcile", Handler: auctionHandler.Reconcile},
			})
		}

		partitions := apiGroup.Group("/partitions")
		{
			addRoutes(partitions, []route{
				{Method: http.MethodPost, Path: "", Handler: partitionHandler.Simulate},
				{Method: http.MethodDelete, Path: "", Handler: partitionHandler.HealAll},
				{Method: http.MethodGet, Path: "/status", Handler: partitionHandler.Status},
				{Method: http.MethodGet, Path: "/history", Handler: partitionHandler.History},
				{Method: http.MethodDelete, Path: "/:region", Handler: partitionHandler.HealRegion},
				{Method: http.MethodPut, Path: "/:region/status", Handler: partitionHandler.UpdateStatus},
			})
		}

		regions := apiGroup.Group("/regions")
		{
			addRoutes(regions, []route{
				{Method: http.MethodPut, Path: "/current", Handler: partitionHandler.SetCurrentRegion},
				{Method: http.MethodGet, Path: "/:region/reconciliation-candidates", Handler: auctionHandler.ReconciliationCandidates},
			})
		}

		vehicles := apiGroup.Group("/vehicles")
		{
			addRoutes(vehicles, []route{
				{Method: http.MethodPost, Path: "", Handler: vehicleHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: vehicleHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: vehicleHandler.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: vehicleHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: vehicleHandler.Delete},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
