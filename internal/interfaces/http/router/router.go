// Package router assembles the gin engine, routes and HTTP server lifecycle.
package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aimuhasebi/platform/internal/config"
	"github.com/aimuhasebi/platform/internal/interfaces/http/handlers"
	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/logger"
)

// Router wires the HTTP surface and owns the server lifecycle.
type Router struct {
	engine       *gin.Engine
	config       *config.Config
	log          logger.Logger
	health       *handlers.HealthHandler
	riskTrends   *handlers.RiskTrendHandler
	usage        *handlers.UsageHandler
	server       *http.Server
}

// NewRouter creates the router with its handlers.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	health *handlers.HealthHandler,
	riskTrends *handlers.RiskTrendHandler,
	usage *handlers.UsageHandler,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	return &Router{
		engine:     gin.New(),
		config:     cfg,
		log:        log.WithComponent("router"),
		health:     health,
		riskTrends: riskTrends,
		usage:      usage,
	}
}

// SetupRoutes registers middleware and all routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(handlers.RecoveryMiddleware(r.log))
	r.engine.Use(handlers.RequestIDMiddleware())
	r.engine.Use(handlers.LoggingMiddleware(r.log))

	r.engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", constants.HeaderRequestID, constants.HeaderTenantID},
		ExposeHeaders:    []string{constants.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.engine.GET("/live", r.health.LivenessCheck)
	r.engine.GET("/ready", r.health.ReadinessCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.config.Server.PprofEnabled {
		pprof.Register(r.engine)
	}

	v1 := r.engine.Group("/api/v1")
	v1.Use(handlers.TenantMiddleware())
	{
		risk := v1.Group("/risk")
		{
			risk.GET("/documents/:document_id/trend", r.riskTrends.GetDocumentTrend)
			risk.GET("/companies/:company_id/trend", r.riskTrends.GetCompanyTrend)
			risk.GET("/trends", r.riskTrends.GetDashboardTrends)
		}

		usage := v1.Group("/usage")
		{
			usage.GET("/limits/:metric", r.usage.CheckLimit)
			usage.GET("/summary", r.usage.GetUsageSummary)
			usage.POST("/increment", r.usage.IncrementUsage)
			usage.POST("/consume", r.usage.ConsumeForCreation)
		}
	}

	// Internal surface for the risk-computation pipeline. Reachable only
	// inside the cluster network; the gateway never routes /internal here.
	internal := r.engine.Group("/internal/v1")
	internal.Use(handlers.TenantMiddleware())
	{
		internal.POST("/risk/observations", r.riskTrends.RecordObservation)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "the requested resource was not found",
		})
	})
}

// Start runs the HTTP server until the context is cancelled, then shuts it
// down gracefully.
func (r *Router) Start(ctx context.Context) error {
	r.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port),
		Handler:      r.engine,
		ReadTimeout:  time.Duration(r.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(r.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(r.config.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.log.Info(ctx, "HTTP server listening", logger.String("addr", r.server.Addr))
		if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	r.log.Info(shutdownCtx, "Shutting down HTTP server")
	return r.server.Shutdown(shutdownCtx)
}

// Engine exposes the gin engine for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
