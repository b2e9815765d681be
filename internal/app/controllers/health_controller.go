package controllers

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vivekvardhan78/JalRakshak/internal/app/middleware"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services/container"
	"github.com/vivekvardhan78/JalRakshak/internal/error/response"
	"github.com/vivekvardhan78/JalRakshak/internal/realtime"
)

// HealthController reports process and dependency health.
type HealthController struct {
	Container *container.ServiceContainer
}

// NewHealthController creates a new health controller.
func NewHealthController(container *container.ServiceContainer) *HealthController {
	return &HealthController{Container: container}
}

// Ping liveness probe
// @Summary      Ping
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health/ping [get]
func (h *HealthController) Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Status dependency health
// @Summary      Status
// @Description  Reports database, cache, broker and stream health
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health/status [get]
func (h *HealthController) Status(c *gin.Context) {
	status := gin.H{
		"time":     time.Now().Format(time.RFC3339),
		"database": "up",
		"redis":    "down",
		"mqtt":     "down",
	}

	db := h.Container.GetDB()
	if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
		status["database"] = "down"
	} else {
		stats := sqlDB.Stats()
		status["db_open_connections"] = stats.OpenConnections
		status["db_in_use"] = stats.InUse
		status["db_idle"] = stats.Idle
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	status["goroutines"] = runtime.NumGoroutine()
	status["memory_alloc_mb"] = mem.Alloc / 1024 / 1024

	if redisService, ok := h.Container.GetService("redis").(services.InterfaceRedisService); ok && redisService != nil {
		if err := redisService.Ping(); err == nil {
			status["redis"] = "up"
		}
	}

	if ingest, ok := h.Container.GetService("ingest").(services.InterfaceIngestService); ok && ingest != nil {
		if ingest.IsConnected() {
			status["mqtt"] = "up"
		}
	}

	if hub, ok := h.Container.GetService("hub").(*realtime.Hub); ok && hub != nil {
		status["stream_clients"] = hub.ClientCount()
	}

	if simulator, ok := h.Container.GetService("simulator").(services.InterfaceSimulatorService); ok && simulator != nil {
		status["simulator_running"] = simulator.IsRunning()
	}

	response.Success(c, status)
}

// CacheStats response cache contents
// @Summary      Cache stats
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health/cache [get]
// @Security     BearerAuth
func (h *HealthController) CacheStats(c *gin.Context) {
	response.Success(c, middleware.CacheStats())
}
