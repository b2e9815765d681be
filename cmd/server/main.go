// @title           JalRakshak Water Monitoring API
// @version         1.0
// @description     Water utility monitoring dashboard backend: sensor telemetry, threshold alerts, citizen complaints and maintenance scheduling

// @contact.name   API Support
// @contact.email  support@jalrakshak.example.com

// @license.name  MIT

// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/app/routes"
	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/database"
	"github.com/vivekvardhan78/JalRakshak/internal/realtime"
	Logger "github.com/vivekvardhan78/JalRakshak/pkg/logger"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	if err := Logger.SetupLogger(); err != nil {
		fmt.Printf("Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		Logger.Warning("No .env file loaded: %v", err)
	} else {
		Logger.Info("Loaded .env file")
	}

	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("Failed to create database connection pool: %v", err)
	}
	db := pool.GetDB()

	switch cfg.DBMigrationMode {
	case "drop":
		log.Println("Warning: running in drop mode, all tables will be dropped and recreated")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("Drop and recreate failed: %v", err)
		}
	case "alter":
		log.Println("Running in alter mode, table structure will be reconciled with the models")
		if err := alterMigrate(db); err != nil {
			log.Fatalf("Alter migration failed: %v", err)
		}
	default:
		log.Println("Running in standard mode, only new columns and tables will be added")
		if err := autoMigrate(db); err != nil {
			log.Fatalf("Auto migration failed: %v", err)
		}
	}

	ensureAdminExists(db, cfg)

	rules := config.LoadThresholdRules(cfg.ThresholdRulesPath)

	hub := realtime.NewHub()
	go hub.Run()

	r, _ := routes.SetupRouter(db, cfg, rules, hub)

	printSystemInfo(pool)

	port := cfg.ServerPort
	Logger.Info("Server listening on http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		Logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}

// autoMigrate adds new columns and tables without dropping anything.
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Sensor{},
		&models.SensorReading{},
		&models.Alert{},
		&models.Complaint{},
		&models.MaintenanceTask{},
		&models.SimulatorSetting{},
	)
	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// alterMigrate reconciles table structure with the models, dropping columns
// the models no longer carry.
func alterMigrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB connection: %w", err)
	}

	if _, err := sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		log.Printf("Failed to disable foreign key checks: %v", err)
	}
	defer sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 1")

	return autoMigrate(db)
}

// dropAndRecreateTables drops every table and migrates from scratch.
func dropAndRecreateTables(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB connection: %w", err)
	}

	if _, err := sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		log.Printf("Failed to disable foreign key checks: %v", err)
	}
	defer sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 1")

	tables := []string{
		"users", "sensors", "sensor_readings", "alerts",
		"complaints", "maintenance_tasks", "simulator_settings",
	}

	for _, table := range tables {
		log.Printf("Dropping table: %s", table)
		if _, err := sqlDB.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			log.Printf("Failed to drop table %s: %v", table, err)
		}
	}

	return autoMigrate(db)
}

// ensureAdminExists creates the bootstrap admin account on first run.
func ensureAdminExists(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)

	if count == 0 {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash bootstrap password: %v", err)
		}

		admin := models.User{
			Username: "admin",
			Password: string(hashedPassword),
			Email:    "admin@jalrakshak.local",
			Role:     models.RoleAdmin,
			Status:   "active",
		}

		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to create bootstrap admin: %v", err)
		}

		log.Println("Created bootstrap admin account")
	}
}

// printSystemInfo logs pool and runtime statistics at startup.
func printSystemInfo(pool *database.ConnectionPool) {
	if stats, err := pool.Stats(); err == nil {
		log.Printf("Database connection pool: %+v", stats)
	}

	log.Printf("CPU cores: %d", runtime.NumCPU())
	log.Printf("Goroutines: %d", runtime.NumGoroutine())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Printf("Memory: Alloc=%v MiB, TotalAlloc=%v MiB, Sys=%v MiB",
		m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024)
}
