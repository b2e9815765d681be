package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

// InterfaceAlertService defines the alert service interface.
type InterfaceAlertService interface {
	Evaluate(reading *models.SensorReading) []models.Alert
	ProcessReading(reading *models.SensorReading, derived []models.Alert) ([]models.Alert, error)
	GetAlerts(query models.PaginationQuery, status, severity string) ([]models.Alert, int64, error)
	GetAlertByID(id uint) (*models.Alert, error)
	Acknowledge(id, userID uint) (*models.Alert, error)
	Resolve(id, userID uint) (*models.Alert, error)
	CountsBySeverity() (map[string]int64, error)
}

// AlertService derives alerts from threshold breaches and manages their
// lifecycle.
type AlertService struct {
	DB     *gorm.DB
	Config *config.Config
	Rules  config.ThresholdRules

	dedupMu sync.Mutex
}

// NewAlertService creates a new alert service.
func NewAlertService(db *gorm.DB, cfg *config.Config, rules config.ThresholdRules) InterfaceAlertService {
	return &AlertService{
		DB:     db,
		Config: cfg,
		Rules:  rules,
	}
}

// Evaluate compares a reading against its threshold band and returns the
// derived alerts without persisting them. At most one breach alert is
// produced per reading: critical band wins over warning band.
func (s *AlertService) Evaluate(reading *models.SensorReading) []models.Alert {
	rule, ok := s.Rules[string(reading.Type)]
	if !ok {
		return nil
	}

	var alerts []models.Alert

	switch {
	case reading.Value < rule.CritMin || reading.Value > rule.CritMax:
		alerts = append(alerts, models.Alert{
			SensorID: reading.SensorID,
			Metric:   reading.Type,
			Severity: models.SeverityCritical,
			Message: fmt.Sprintf("%s reading %.2f %s outside critical band [%.2f, %.2f]",
				reading.Type, reading.Value, rule.Unit, rule.CritMin, rule.CritMax),
			ThresholdValue: nearestBound(reading.Value, rule.CritMin, rule.CritMax),
			ActualValue:    reading.Value,
			TriggeredAt:    reading.RecordedAt,
			Status:         models.AlertStatusActive,
		})
	case reading.Value < rule.WarnMin || reading.Value > rule.WarnMax:
		alerts = append(alerts, models.Alert{
			SensorID: reading.SensorID,
			Metric:   reading.Type,
			Severity: models.SeverityWarning,
			Message: fmt.Sprintf("%s reading %.2f %s outside normal band [%.2f, %.2f]",
				reading.Type, reading.Value, rule.Unit, rule.WarnMin, rule.WarnMax),
			ThresholdValue: nearestBound(reading.Value, rule.WarnMin, rule.WarnMax),
			ActualValue:    reading.Value,
			TriggeredAt:    reading.RecordedAt,
			Status:         models.AlertStatusActive,
		})
	}

	return alerts
}

// ProcessReading persists the alerts derived from a stored reading and
// handles recovery. The caller passes the Evaluate result so each reading is
// evaluated once. A breach does not duplicate an identical unresolved alert
// for the same sensor and metric; a normal reading auto-resolves open breach
// alerts and raises an info notice instead.
func (s *AlertService) ProcessReading(reading *models.SensorReading, derived []models.Alert) ([]models.Alert, error) {
	// Simulator, MQTT and HTTP ingest share this one instance; serializing
	// keeps the dedup check-then-insert from racing between them.
	s.dedupMu.Lock()
	defer s.dedupMu.Unlock()

	if len(derived) == 0 {
		return s.handleRecovery(reading)
	}

	var created []models.Alert
	for _, alert := range derived {
		var count int64
		err := s.DB.Model(&models.Alert{}).
			Where("sensor_id = ? AND metric = ? AND severity = ? AND status != ?",
				alert.SensorID, alert.Metric, alert.Severity, models.AlertStatusResolved).
			Count(&count).Error
		if err != nil {
			return created, err
		}
		if count > 0 {
			// Identical breach already open; keep the original alert.
			continue
		}

		if err := s.DB.Create(&alert).Error; err != nil {
			return created, err
		}
		created = append(created, alert)
	}

	return created, nil
}

// handleRecovery auto-resolves open breach alerts for a sensor/metric whose
// reading is back in band and raises a single info notice.
func (s *AlertService) handleRecovery(reading *models.SensorReading) ([]models.Alert, error) {
	var open []models.Alert
	err := s.DB.
		Where("sensor_id = ? AND metric = ? AND status != ? AND severity != ?",
			reading.SensorID, reading.Type, models.AlertStatusResolved, models.SeverityInfo).
		Find(&open).Error
	if err != nil || len(open) == 0 {
		return nil, err
	}

	now := time.Now()
	err = s.DB.Model(&models.Alert{}).
		Where("sensor_id = ? AND metric = ? AND status != ? AND severity != ?",
			reading.SensorID, reading.Type, models.AlertStatusResolved, models.SeverityInfo).
		Updates(map[string]interface{}{"status": models.AlertStatusResolved, "resolved_at": now}).Error
	if err != nil {
		return nil, err
	}

	rule := s.Rules[string(reading.Type)]
	notice := models.Alert{
		SensorID: reading.SensorID,
		Metric:   reading.Type,
		Severity: models.SeverityInfo,
		Status:   models.AlertStatusResolved,
		Message: fmt.Sprintf("%s reading %.2f %s back within normal band",
			reading.Type, reading.Value, rule.Unit),
		ThresholdValue: rule.WarnMax,
		ActualValue:    reading.Value,
		TriggeredAt:    reading.RecordedAt,
		ResolvedAt:     &now,
	}
	if err := s.DB.Create(&notice).Error; err != nil {
		return nil, err
	}

	return []models.Alert{notice}, nil
}

// GetAlerts lists alerts with pagination and optional status/severity filters.
func (s *AlertService) GetAlerts(query models.PaginationQuery, status, severity string) ([]models.Alert, int64, error) {
	query.Normalize()

	db := s.DB.Model(&models.Alert{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if severity != "" {
		db = db.Where("severity = ?", severity)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var alerts []models.Alert
	err := db.Preload("Sensor").
		Order("triggered_at desc").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&alerts).Error
	if err != nil {
		return nil, 0, err
	}

	return alerts, total, nil
}

// GetAlertByID fetches one alert.
func (s *AlertService) GetAlertByID(id uint) (*models.Alert, error) {
	var alert models.Alert
	if err := s.DB.Preload("Sensor").First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("alert not found")
		}
		return nil, err
	}
	return &alert, nil
}

// Acknowledge marks an active alert as acknowledged by a user.
func (s *AlertService) Acknowledge(id, userID uint) (*models.Alert, error) {
	alert, err := s.GetAlertByID(id)
	if err != nil {
		return nil, err
	}

	if alert.Status == models.AlertStatusResolved {
		return nil, errors.New("alert already resolved")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":          models.AlertStatusAcknowledged,
		"acknowledged_by": userID,
		"acknowledged_at": now,
	}
	if err := s.DB.Model(alert).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetAlertByID(id)
}

// Resolve marks an alert as resolved by a user.
func (s *AlertService) Resolve(id, userID uint) (*models.Alert, error) {
	alert, err := s.GetAlertByID(id)
	if err != nil {
		return nil, err
	}

	if alert.Status == models.AlertStatusResolved {
		return nil, errors.New("alert already resolved")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      models.AlertStatusResolved,
		"resolved_by": userID,
		"resolved_at": now,
	}
	if err := s.DB.Model(alert).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetAlertByID(id)
}

// CountsBySeverity returns the number of unresolved alerts per severity.
func (s *AlertService) CountsBySeverity() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, severity := range []models.AlertSeverity{models.SeverityCritical, models.SeverityWarning, models.SeverityInfo} {
		var n int64
		err := s.DB.Model(&models.Alert{}).
			Where("severity = ? AND status != ?", severity, models.AlertStatusResolved).
			Count(&n).Error
		if err != nil {
			return nil, err
		}
		counts[string(severity)] = n
	}
	return counts, nil
}

// nearestBound returns whichever band edge the value crossed.
func nearestBound(value, min, max float64) float64 {
	if value < min {
		return min
	}
	return max
}
