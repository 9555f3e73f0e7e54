package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"car-auction/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	// browsers must be allowed to send the caller region
	headers := cfg.AllowHeaders
	if !slices.ContainsFunc(headers, func(h string) bool { return strings.EqualFold(h, RegionHeader) }) {
		headers = append(slices.Clone(headers), RegionHeader)
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     headers,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "AllowOrigins", cfg.AllowOrigins, "AllowHeaders", headers)
	return cors.New(corsCfg)
}
