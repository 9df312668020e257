package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aimuhasebi/platform/internal/infrastructure/persistence/postgres"
	"github.com/aimuhasebi/platform/internal/infrastructure/persistence/redis"
	"github.com/aimuhasebi/platform/pkg/logger"
)

// HealthHandler provides the health check endpoints.
type HealthHandler struct {
	db    *postgres.DBConnection
	redis *redis.Connection
	log   logger.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *postgres.DBConnection, redis *redis.Connection, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
		log:   log.WithComponent("health_handler"),
	}
}

// LivenessCheck handles GET /live. It only confirms the process is serving.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

// ReadinessCheck handles GET /ready, verifying dependency connectivity.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	checks := h.performChecks(c.Request.Context())

	status := "ready"
	httpStatus := http.StatusOK
	for _, checkStatus := range checks {
		if checkStatus != "ok" {
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}

func (h *HealthHandler) performChecks(ctx context.Context) map[string]string {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		checks = make(map[string]string)
	)

	record := func(name string, err error) {
		status := "ok"
		if err != nil {
			status = "error: " + err.Error()
		}
		mu.Lock()
		checks[name] = status
		mu.Unlock()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		record("database", h.db.Ping(checkCtx))
	}()
	go func() {
		defer wg.Done()
		record("redis", h.redis.Ping(checkCtx))
	}()
	wg.Wait()

	return checks
}
