package container

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
	"github.com/vivekvardhan78/JalRakshak/internal/realtime"
	"github.com/vivekvardhan78/JalRakshak/pkg/logger"
)

// ServiceContainer wires every service together and hands them to the
// controllers by name.
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	rules  config.ThresholdRules
	hub    *realtime.Hub

	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	storageService services.InterfaceStorageService
	geocodeService services.InterfaceGeocodeService

	alertService       services.InterfaceAlertService
	sensorService      services.InterfaceSensorService
	complaintService   services.InterfaceComplaintService
	maintenanceService services.InterfaceMaintenanceService
	userService        services.InterfaceUserService
	dashboardService   services.InterfaceDashboardService

	ingestService    services.InterfaceIngestService
	simulatorService services.InterfaceSimulatorService

	mu sync.RWMutex
}

// NewServiceContainer creates the container and initializes every service.
func NewServiceContainer(db *gorm.DB, cfg *config.Config, rules config.ThresholdRules, hub *realtime.Hub) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}
	if cfg == nil {
		panic("config is nil")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		rules:  rules,
		hub:    hub,
	}
	container.initializeServices()
	return container
}

func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config, c.db)

	c.redisService = services.NewRedisService(c.config)
	if err := c.redisService.Ping(); err != nil {
		logger.Warning("Redis unreachable: %v, caching disabled", err)
		c.redisService = nil
	}

	// Photo storage is optional; a missing key file only disables uploads.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	storageService, err := services.NewStorageService(ctx, c.config)
	if err != nil {
		logger.Warning("Object storage unavailable: %v, photo uploads disabled", err)
	} else {
		c.storageService = storageService
	}

	c.geocodeService = services.NewGeocodeService(c.config, c.redisService)

	c.alertService = services.NewAlertService(c.db, c.config, c.rules)
	c.sensorService = services.NewSensorService(c.db, c.config, c.rules, c.alertService, c.hub)
	c.complaintService = services.NewComplaintService(c.db, c.config, c.storageService, c.geocodeService)
	c.maintenanceService = services.NewMaintenanceService(c.db, c.config)
	c.userService = services.NewUserService(c.db, c.config)
	c.dashboardService = services.NewDashboardService(c.db, c.config, c.sensorService, c.alertService, c.maintenanceService, c.redisService)

	c.ingestService = services.NewIngestService(c.config, c.sensorService)
	if err := c.ingestService.Connect(); err != nil {
		logger.Warning("MQTT ingest unavailable: %v", err)
	}

	c.simulatorService = services.NewSimulatorService(c.db, c.config, c.sensorService)
	if err := c.simulatorService.Resume(); err != nil {
		logger.Warning("Simulator resume failed: %v", err)
	}
}

// GetService returns a service by name.
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "hub":
		return c.hub
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "storage":
		return c.storageService
	case "geocode":
		return c.geocodeService
	case "alert":
		return c.alertService
	case "sensor":
		return c.sensorService
	case "complaint":
		return c.complaintService
	case "maintenance":
		return c.maintenanceService
	case "user":
		return c.userService
	case "dashboard":
		return c.dashboardService
	case "ingest":
		return c.ingestService
	case "simulator":
		return c.simulatorService
	default:
		return nil
	}
}

// GetDB returns the database handle.
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
