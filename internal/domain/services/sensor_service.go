package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
	"github.com/vivekvardhan78/JalRakshak/internal/realtime"
)

// InterfaceSensorService defines the sensor service interface.
type InterfaceSensorService interface {
	GetAllSensors() ([]models.Sensor, error)
	GetSensorByID(id uint) (*models.Sensor, error)
	GetSensorByCode(code string) (*models.Sensor, error)
	CreateSensor(sensor *models.Sensor) error
	UpdateSensor(id uint, updates map[string]interface{}) (*models.Sensor, error)
	DeleteSensor(id uint) error
	StoreReading(reading *models.SensorReading) ([]models.Alert, error)
	GetReadings(query models.PaginationQuery, sensorID uint, sensorType string, from, to *time.Time) ([]models.SensorReading, int64, error)
	GetLatestReadings() ([]models.SensorReading, error)
	ExportReadingsCSV(sensorID uint, from, to *time.Time) ([]byte, error)
	DeleteReadingsBefore(cutoff time.Time) (int64, error)
}

// SensorService manages monitoring stations and their readings. Every stored
// reading goes through threshold evaluation and is pushed to the realtime
// hub.
type SensorService struct {
	DB     *gorm.DB
	Config *config.Config
	Rules  config.ThresholdRules
	Alerts InterfaceAlertService
	Hub    *realtime.Hub
}

// NewSensorService creates a new sensor service.
func NewSensorService(db *gorm.DB, cfg *config.Config, rules config.ThresholdRules, alerts InterfaceAlertService, hub *realtime.Hub) InterfaceSensorService {
	return &SensorService{
		DB:     db,
		Config: cfg,
		Rules:  rules,
		Alerts: alerts,
		Hub:    hub,
	}
}

// GetAllSensors lists every station.
func (s *SensorService) GetAllSensors() ([]models.Sensor, error) {
	var sensors []models.Sensor
	if err := s.DB.Order("code").Find(&sensors).Error; err != nil {
		return nil, err
	}
	return sensors, nil
}

// GetSensorByID fetches one station.
func (s *SensorService) GetSensorByID(id uint) (*models.Sensor, error) {
	var sensor models.Sensor
	if err := s.DB.First(&sensor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("sensor not found")
		}
		return nil, err
	}
	return &sensor, nil
}

// GetSensorByCode fetches one station by its code.
func (s *SensorService) GetSensorByCode(code string) (*models.Sensor, error) {
	var sensor models.Sensor
	if err := s.DB.Where("code = ?", code).First(&sensor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("sensor not found")
		}
		return nil, err
	}
	return &sensor, nil
}

// CreateSensor registers a new station. Station codes are unique.
func (s *SensorService) CreateSensor(sensor *models.Sensor) error {
	if !models.ValidSensorType(sensor.Type) {
		return fmt.Errorf("unknown sensor type: %s", sensor.Type)
	}

	var count int64
	if err := s.DB.Model(&models.Sensor{}).Where("code = ?", sensor.Code).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("sensor already exists")
	}

	if sensor.Status == "" {
		sensor.Status = models.SensorStatusActive
	}

	return s.DB.Create(sensor).Error
}

// UpdateSensor updates station metadata.
func (s *SensorService) UpdateSensor(id uint, updates map[string]interface{}) (*models.Sensor, error) {
	sensor, err := s.GetSensorByID(id)
	if err != nil {
		return nil, err
	}

	if code, ok := updates["code"].(string); ok && code != sensor.Code {
		var count int64
		if err := s.DB.Model(&models.Sensor{}).Where("code = ? AND id != ?", code, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("sensor already exists")
		}
	}

	if err := s.DB.Model(sensor).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetSensorByID(id)
}

// DeleteSensor removes a station.
func (s *SensorService) DeleteSensor(id uint) error {
	sensor, err := s.GetSensorByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(sensor).Error
}

// StoreReading validates, persists and evaluates a reading, then broadcasts
// it with any derived alerts. Returns the alerts raised by this reading.
func (s *SensorService) StoreReading(reading *models.SensorReading) ([]models.Alert, error) {
	sensor, err := s.GetSensorByID(reading.SensorID)
	if err != nil {
		return nil, err
	}
	if sensor.Status != models.SensorStatusActive {
		return nil, fmt.Errorf("sensor %s is not active", sensor.Code)
	}

	if reading.Type == "" {
		reading.Type = sensor.Type
	}
	if !models.ValidSensorType(reading.Type) {
		return nil, fmt.Errorf("unknown sensor type: %s", reading.Type)
	}
	if reading.RecordedAt.IsZero() {
		reading.RecordedAt = time.Now()
	}
	if rule, ok := s.Rules[string(reading.Type)]; ok && reading.Unit == "" {
		reading.Unit = rule.Unit
	}

	derived := s.Alerts.Evaluate(reading)
	reading.IsAbnormal = len(derived) > 0

	if err := s.DB.Create(reading).Error; err != nil {
		return nil, err
	}

	alerts, err := s.Alerts.ProcessReading(reading, derived)
	if err != nil {
		return nil, err
	}

	if s.Hub != nil {
		s.Hub.BroadcastReading(reading)
		for i := range alerts {
			s.Hub.BroadcastAlert(alerts[i])
		}
	}

	return alerts, nil
}

// GetReadings lists readings with pagination and optional filters.
func (s *SensorService) GetReadings(query models.PaginationQuery, sensorID uint, sensorType string, from, to *time.Time) ([]models.SensorReading, int64, error) {
	query.Normalize()

	db := s.DB.Model(&models.SensorReading{})
	if sensorID != 0 {
		db = db.Where("sensor_id = ?", sensorID)
	}
	if sensorType != "" {
		db = db.Where("type = ?", sensorType)
	}
	if from != nil {
		db = db.Where("recorded_at >= ?", *from)
	}
	if to != nil {
		db = db.Where("recorded_at <= ?", *to)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var readings []models.SensorReading
	err := db.Preload("Sensor").
		Order("recorded_at desc").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&readings).Error
	if err != nil {
		return nil, 0, err
	}

	return readings, total, nil
}

// GetLatestReadings returns the most recent reading of every station.
func (s *SensorService) GetLatestReadings() ([]models.SensorReading, error) {
	sensors, err := s.GetAllSensors()
	if err != nil {
		return nil, err
	}

	latest := make([]models.SensorReading, 0, len(sensors))
	for i := range sensors {
		var reading models.SensorReading
		err := s.DB.Where("sensor_id = ?", sensors[i].ID).
			Order("recorded_at desc").
			First(&reading).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		reading.Sensor = &sensors[i]
		latest = append(latest, reading)
	}

	return latest, nil
}

// ExportReadingsCSV renders readings as CSV for download.
func (s *SensorService) ExportReadingsCSV(sensorID uint, from, to *time.Time) ([]byte, error) {
	db := s.DB.Model(&models.SensorReading{}).Preload("Sensor")
	if sensorID != 0 {
		db = db.Where("sensor_id = ?", sensorID)
	}
	if from != nil {
		db = db.Where("recorded_at >= ?", *from)
	}
	if to != nil {
		db = db.Where("recorded_at <= ?", *to)
	}

	var readings []models.SensorReading
	if err := db.Order("recorded_at").Find(&readings).Error; err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"id", "sensor_code", "type", "value", "unit", "recorded_at", "simulated", "abnormal"})

	for _, r := range readings {
		code := ""
		if r.Sensor != nil {
			code = r.Sensor.Code
		}
		w.Write([]string{
			fmt.Sprintf("%d", r.ID),
			code,
			string(r.Type),
			fmt.Sprintf("%.3f", r.Value),
			r.Unit,
			r.RecordedAt.Format(time.RFC3339),
			fmt.Sprintf("%t", r.Simulated),
			fmt.Sprintf("%t", r.IsAbnormal),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeleteReadingsBefore removes readings older than the cutoff.
func (s *SensorService) DeleteReadingsBefore(cutoff time.Time) (int64, error) {
	result := s.DB.Where("recorded_at < ?", cutoff).Delete(&models.SensorReading{})
	return result.RowsAffected, result.Error
}
