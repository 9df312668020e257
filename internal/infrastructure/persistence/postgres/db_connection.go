// Package postgres provides the PostgreSQL-backed repository implementations
// and database connection lifecycle management.
package postgres

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aimuhasebi/platform/internal/config"
	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
)

// DBConnection manages the GORM database handle and its underlying pool.
type DBConnection struct {
	db  *gorm.DB
	log logger.Logger
}

// NewDBConnection opens the database, applies pool settings from config and
// verifies connectivity with a ping.
func NewDBConnection(ctx context.Context, cfg *config.DatabaseConfig, log logger.Logger) (*DBConnection, error) {
	log.Info(ctx, "Initializing PostgreSQL connection",
		logger.String("host", cfg.Host),
		logger.Int("port", cfg.Port),
		logger.String("database", cfg.Database),
		logger.Int("max_conns", cfg.MaxConns),
	)

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to access database pool")
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MinConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxConnLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.MaxConnIdleTime) * time.Minute)

	conn := &DBConnection{db: db, log: log.WithComponent("postgres")}
	if err := conn.Ping(ctx); err != nil {
		return nil, err
	}

	log.Info(ctx, "PostgreSQL connection established")
	return conn, nil
}

// DB returns the GORM handle for repository construction.
func (c *DBConnection) DB() *gorm.DB {
	return c.db
}

// AutoMigrate creates or updates the schema for all owned tables.
func (c *DBConnection) AutoMigrate(ctx context.Context) error {
	err := c.db.WithContext(ctx).AutoMigrate(
		&models.RiskScoreObservation{},
		&models.DocumentRiskScore{},
		&models.CompanyRiskScore{},
		&models.RiskAlert{},
		&models.TenantSubscription{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to migrate database schema")
	}
	c.log.Info(ctx, "Database schema migrated")
	return nil
}

// Ping verifies database connectivity.
func (c *DBConnection) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to access database pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		c.log.Error(ctx, "Database ping failed", err)
		return errors.Wrap(err, "database ping failed")
	}

	latency := time.Since(start)
	if latency > 100*time.Millisecond {
		c.log.Warn(ctx, "High database latency",
			logger.Duration("latency", latency))
	}
	return nil
}

// Close shuts down the connection pool. Call during application shutdown.
func (c *DBConnection) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	c.log.Info(context.Background(), "Closing PostgreSQL connection")
	return sqlDB.Close()
}
