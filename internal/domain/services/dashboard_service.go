package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

// InterfaceDashboardService defines the dashboard summary interface.
type InterfaceDashboardService interface {
	GetSummary() (*DashboardSummary, error)
}

// DashboardSummary is the single payload the dashboard landing page needs.
type DashboardSummary struct {
	GeneratedAt    time.Time              `json:"generated_at"`
	SensorCount    int64                  `json:"sensor_count"`
	ActiveSensors  int64                  `json:"active_sensors"`
	LatestReadings []models.SensorReading `json:"latest_readings"`
	AlertCounts    map[string]int64       `json:"alert_counts"`
	OpenComplaints int64                  `json:"open_complaints"`
	OpenTasks      int64                  `json:"open_tasks"`
	ReadingsToday  int64                  `json:"readings_today"`
	AbnormalToday  int64                  `json:"abnormal_today"`
}

const dashboardCacheKey = "dashboard:summary"

// DashboardService aggregates counts and latest readings into one summary,
// cached in Redis for a short window since every dashboard client polls it.
type DashboardService struct {
	DB          *gorm.DB
	Config      *config.Config
	Sensors     InterfaceSensorService
	Alerts      InterfaceAlertService
	Maintenance InterfaceMaintenanceService
	Redis       InterfaceRedisService
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(db *gorm.DB, cfg *config.Config, sensors InterfaceSensorService, alerts InterfaceAlertService, maintenance InterfaceMaintenanceService, redis InterfaceRedisService) InterfaceDashboardService {
	return &DashboardService{
		DB:          db,
		Config:      cfg,
		Sensors:     sensors,
		Alerts:      alerts,
		Maintenance: maintenance,
		Redis:       redis,
	}
}

// GetSummary returns the dashboard summary, serving from cache when fresh.
func (s *DashboardService) GetSummary() (*DashboardSummary, error) {
	if s.Redis != nil {
		var cached DashboardSummary
		if err := s.Redis.Get(dashboardCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	summary, err := s.buildSummary()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		s.Redis.Set(dashboardCacheKey, summary, 30*time.Second)
	}

	return summary, nil
}

func (s *DashboardService) buildSummary() (*DashboardSummary, error) {
	summary := &DashboardSummary{
		GeneratedAt: time.Now(),
		AlertCounts: make(map[string]int64),
	}

	if err := s.DB.Model(&models.Sensor{}).Count(&summary.SensorCount).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Sensor{}).
		Where("status = ?", models.SensorStatusActive).
		Count(&summary.ActiveSensors).Error; err != nil {
		return nil, err
	}

	latest, err := s.Sensors.GetLatestReadings()
	if err != nil {
		return nil, err
	}
	summary.LatestReadings = latest

	counts, err := s.Alerts.CountsBySeverity()
	if err != nil {
		return nil, err
	}
	summary.AlertCounts = counts

	if err := s.DB.Model(&models.Complaint{}).
		Where("status != ?", models.ComplaintStatusResolved).
		Count(&summary.OpenComplaints).Error; err != nil {
		return nil, err
	}

	openTasks, err := s.Maintenance.CountOpen()
	if err != nil {
		return nil, err
	}
	summary.OpenTasks = openTasks

	dayStart := startOfDay(time.Now())
	if err := s.DB.Model(&models.SensorReading{}).
		Where("recorded_at >= ?", dayStart).
		Count(&summary.ReadingsToday).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.SensorReading{}).
		Where("recorded_at >= ? AND is_abnormal = ?", dayStart, true).
		Count(&summary.AbnormalToday).Error; err != nil {
		return nil, err
	}

	return summary, nil
}

// startOfDay returns midnight of the instant's day in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
