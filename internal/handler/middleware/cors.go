package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"therapy-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Browsers need these regardless of what the environment configures.
var (
	bookingRequestHeaders = []string{"Authorization", "Idempotency-Key", RequestIDHeader}
	bookingExposedHeaders = []string{"Location", "Retry-After", RequestIDHeader}
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeaders(cfg.AllowHeaders, bookingRequestHeaders),
		ExposeHeaders:    withHeaders(cfg.ExposeHeaders, bookingExposedHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		slog.Any("allow_origins", corsCfg.AllowOrigins),
		slog.Any("expose_headers", corsCfg.ExposeHeaders))
	return cors.New(corsCfg)
}

func withHeaders(configured, required []string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(c string) bool { return http.CanonicalHeaderKey(c) == http.CanonicalHeaderKey(h) }) {
			out = append(out, h)
		}
	}
	return out
}
