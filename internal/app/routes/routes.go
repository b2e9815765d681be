package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/app/controllers"
	"github.com/vivekvardhan78/JalRakshak/internal/app/middleware"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/services/container"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
	"github.com/vivekvardhan78/JalRakshak/internal/realtime"
)

// SetupRouter builds the service container and the configured gin engine.
func SetupRouter(db *gorm.DB, cfg *config.Config, rules config.ThresholdRules, hub *realtime.Hub) (*gin.Engine, *container.ServiceContainer) {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Accept", "Cache-Control", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	serviceContainer := container.NewServiceContainer(db, cfg, rules, hub)
	middleware.InitAuthMiddleware(cfg, db)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)
	return r, serviceContainer
}

func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	api := r.Group("/api")
	registerPublicRoutes(api, container)
	registerCitizenRoutes(api, container)
	registerStaffRoutes(api, container)
	registerAdminRoutes(api, container)
}

// registerPublicRoutes registers routes that need no token.
func registerPublicRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	api.Use(middleware.IPRateLimiter(10, 20))

	health := controllers.NewHealthController(container)
	api.GET("/ping", health.Ping)
	api.GET("/health", health.Ping) // Docker healthcheck compatibility
	healthGroup := api.Group("/health")
	healthGroup.GET("/status", health.Status)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.PathRateLimiter(5, 10))
	authGroup.POST("/login", controllers.HandleAuthFunc(container, "login"))
	authGroup.POST("/register", controllers.HandleAuthFunc(container, "register"))

	// The realtime feed validates a token query parameter on upgrade;
	// browsers cannot set websocket headers.
	stream := controllers.NewStreamController(container)
	api.GET("/stream", stream.Serve)
}

// registerCitizenRoutes registers routes any authenticated account can use.
func registerCitizenRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateUser())
	auth.Use(middleware.IPRateLimiter(30, 50))

	// Complaints: citizens file and follow their own reports.
	complaintGroup := auth.Group("/complaints")
	complaintGroup.POST("", controllers.HandleComplaintFunc(container, "createComplaint"))
	complaintGroup.GET("", controllers.HandleComplaintFunc(container, "getComplaints"))
	complaintGroup.GET("/:id", controllers.HandleComplaintFunc(container, "getComplaint"))

	// Account self-service.
	auth.PUT("/users/password", controllers.HandleUserFunc(container, "changePassword"))

	// Dashboard data is readable by every account.
	auth.GET("/dashboard/summary", middleware.Cache(middleware.CacheConfig{Expiration: 15 * time.Second}), controllers.HandleDashboardFunc(container, "getSummary"))
	auth.GET("/sensors", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleSensorFunc(container, "getSensors"))
	auth.GET("/sensors/:id", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleSensorFunc(container, "getSensor"))
	auth.GET("/readings", controllers.HandleSensorFunc(container, "getReadings"))
	auth.GET("/readings/latest", middleware.Cache(middleware.CacheConfig{Expiration: 10 * time.Second}), controllers.HandleSensorFunc(container, "getLatestReadings"))
	auth.GET("/alerts", controllers.HandleAlertFunc(container, "getAlerts"))
	auth.GET("/alerts/counts", middleware.Cache(middleware.CacheConfig{Expiration: 10 * time.Second}), controllers.HandleAlertFunc(container, "getAlertCounts"))
	auth.GET("/alerts/:id", controllers.HandleAlertFunc(container, "getAlert"))
}

// registerStaffRoutes registers routes for field staff (admins included).
func registerStaffRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	staff := api.Group("/")
	staff.Use(middleware.AuthenticateStaff())
	staff.Use(middleware.IPRateLimiter(30, 50))

	// Telemetry submission and export.
	staff.POST("/sensors/:id/readings", controllers.HandleSensorFunc(container, "storeReading"))
	staff.GET("/readings/export", controllers.HandleSensorFunc(container, "exportReadings"))

	// Alert lifecycle.
	staff.PUT("/alerts/:id/acknowledge", controllers.HandleAlertFunc(container, "acknowledgeAlert"))
	staff.PUT("/alerts/:id/resolve", controllers.HandleAlertFunc(container, "resolveAlert"))

	// Complaint workflow.
	staff.PUT("/complaints/:id/assign", controllers.HandleComplaintFunc(container, "assignComplaint"))
	staff.PUT("/complaints/:id/status", controllers.HandleComplaintFunc(container, "updateStatus"))

	// Maintenance tasks.
	taskGroup := staff.Group("/tasks")
	taskGroup.GET("", controllers.HandleMaintenanceFunc(container, "getTasks"))
	taskGroup.GET("/:id", controllers.HandleMaintenanceFunc(container, "getTask"))
	taskGroup.POST("", controllers.HandleMaintenanceFunc(container, "createTask"))
	taskGroup.PUT("/:id", controllers.HandleMaintenanceFunc(container, "updateTask"))
	taskGroup.PUT("/:id/complete", controllers.HandleMaintenanceFunc(container, "completeTask"))
	taskGroup.PUT("/:id/cancel", controllers.HandleMaintenanceFunc(container, "cancelTask"))
}

// registerAdminRoutes registers admin-only routes.
func registerAdminRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	admin := api.Group("/")
	admin.Use(middleware.AuthenticateAdmin())
	admin.Use(middleware.IPRateLimiter(30, 50))

	// Station management.
	admin.POST("/sensors", controllers.HandleSensorFunc(container, "createSensor"))
	admin.PUT("/sensors/:id", controllers.HandleSensorFunc(container, "updateSensor"))
	admin.DELETE("/sensors/:id", controllers.HandleSensorFunc(container, "deleteSensor"))

	// Reading retention.
	admin.DELETE("/readings", controllers.HandleSensorFunc(container, "purgeReadings"))

	// Account management.
	userGroup := admin.Group("/users")
	userGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleUserFunc(container, "getUsers"))
	userGroup.GET("/:id", controllers.HandleUserFunc(container, "getUser"))
	userGroup.POST("", controllers.HandleUserFunc(container, "createUser"))
	userGroup.PUT("/:id", controllers.HandleUserFunc(container, "updateUser"))
	userGroup.PUT("/:id/status", controllers.HandleUserFunc(container, "setStatus"))
	userGroup.DELETE("/:id", controllers.HandleUserFunc(container, "deleteUser"))

	// Complaint and task removal.
	admin.DELETE("/complaints/:id", controllers.HandleComplaintFunc(container, "deleteComplaint"))
	admin.DELETE("/tasks/:id", controllers.HandleMaintenanceFunc(container, "deleteTask"))

	// Simulator control.
	simulatorGroup := admin.Group("/simulator")
	simulatorGroup.POST("/start", controllers.HandleSimulatorFunc(container, "start"))
	simulatorGroup.POST("/stop", controllers.HandleSimulatorFunc(container, "stop"))
	simulatorGroup.GET("/status", controllers.HandleSimulatorFunc(container, "status"))

	// Cache introspection.
	health := controllers.NewHealthController(container)
	admin.GET("/health/cache-stats", health.CacheStats)
}
