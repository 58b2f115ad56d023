package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yanqian/funzone-site/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/branches", handler.ListBranches)
		api.GET("/branches/:ref", handler.GetBranch)
		api.GET("/branches/:ref/status", handler.BranchStatus)
		api.POST("/branches/:ref/contact", rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger), handler.OpenContact)
		api.GET("/branches/:ref/birthdays", handler.Birthdays)
		api.GET("/birthdays", handler.BirthdayBranches)
		api.GET("/programs", handler.Programs)
		api.GET("/programs/:slug", handler.GetProgram)
		api.GET("/compare", handler.Compare)
		api.GET("/cities", handler.Cities)
		api.GET("/neighborhoods", handler.Neighborhoods)
		api.GET("/activities", handler.Activities)
		api.GET("/gallery", handler.Gallery)
		api.GET("/map/pins", handler.MapPins)
		api.GET("/contact/trending", handler.TrendingContacts)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        instrument(withRetry(router, cfg.HTTP.Retry, handler.logger), cfg.Telemetry),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func instrument(h http.Handler, cfg config.TelemetryConfig) http.Handler {
	if !cfg.Enabled {
		return h
	}
	name := cfg.ServiceName
	if name == "" {
		name = "funzone-site"
	}
	return otelhttp.NewHandler(h, name)
}
