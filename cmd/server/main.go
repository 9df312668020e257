// Command server runs the AI Muhasebi platform core: risk trend queries,
// risk score recording, and subscription usage enforcement.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aimuhasebi/platform/internal/application/service"
	"github.com/aimuhasebi/platform/internal/config"
	domainservice "github.com/aimuhasebi/platform/internal/domain/service"
	"github.com/aimuhasebi/platform/internal/infrastructure/events"
	"github.com/aimuhasebi/platform/internal/infrastructure/monitoring"
	"github.com/aimuhasebi/platform/internal/infrastructure/persistence/postgres"
	"github.com/aimuhasebi/platform/internal/infrastructure/persistence/redis"
	"github.com/aimuhasebi/platform/internal/interfaces/http/handlers"
	"github.com/aimuhasebi/platform/internal/interfaces/http/router"
	"github.com/aimuhasebi/platform/pkg/logger"
)

func main() {
	// Bootstrap logger for the configuration phase; replaced once the real
	// log settings are known.
	bootLog, err := monitoring.NewZapLogger(&config.LogConfig{Level: "info", Format: "json"})
	if err != nil {
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(bootLog)
	if err != nil {
		bootLog.Fatal(context.Background(), "Failed to load configuration", err)
	}

	log, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		bootLog.Fatal(context.Background(), "Failed to initialize logger", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal(ctx, "Server exited with error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, log)
	if err != nil {
		return err
	}
	defer func() { _ = tracing.Shutdown(context.Background()) }()

	db, err := postgres.NewDBConnection(ctx, &cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(ctx); err != nil {
		return err
	}

	redisConn, err := redis.NewConnection(ctx, &cfg.Redis, log)
	if err != nil {
		return err
	}
	defer func() { _ = redisConn.Close() }()

	var publisher domainservice.RiskEventPublisher
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(&cfg.Kafka, log)
	} else {
		publisher = domainservice.NewNoopPublisher()
	}
	defer func() { _ = publisher.Close() }()

	historyRepo := postgres.NewRiskHistoryRepository(db.DB())
	documentScores := postgres.NewDocumentRiskScoreRepository(db.DB())
	companyScores := postgres.NewCompanyRiskScoreRepository(db.DB())
	alertRepo := postgres.NewRiskAlertRepository(db.DB())
	subscriptionRepo := postgres.NewSubscriptionRepository(db.DB())
	counterStore := redis.NewUsageCounterStore(redisConn.Client())

	trendService := service.NewRiskTrendService(historyRepo, documentScores, cfg.Risk.DocumentTrendWindowDays, log)
	dashboardService := service.NewDashboardTrendsService(historyRepo, alertRepo, log)
	recorderService := service.NewRiskRecorderService(historyRepo, documentScores, companyScores, publisher, log)
	usageService := service.NewUsageService(subscriptionRepo, counterStore, log)

	config.OnReload(func(updated *config.Config) {
		log.Info(context.Background(), "Configuration reloaded",
			logger.Int("document_trend_window_days", updated.Risk.DocumentTrendWindowDays))
	})

	metrics := monitoring.NewMetrics()
	healthHandler := handlers.NewHealthHandler(db, redisConn, log)
	riskTrendHandler := handlers.NewRiskTrendHandler(trendService, dashboardService, recorderService, metrics, log)
	usageHandler := handlers.NewUsageHandler(usageService, metrics, log)

	r := router.NewRouter(cfg, log, healthHandler, riskTrendHandler, usageHandler)
	r.SetupRoutes()

	return r.Start(ctx)
}
