package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

func newTestAlertService() *AlertService {
	return &AlertService{Rules: config.DefaultThresholdRules()}
}

func reading(sensorType models.SensorType, value float64) *models.SensorReading {
	return &models.SensorReading{
		SensorID:   1,
		Type:       sensorType,
		Value:      value,
		RecordedAt: time.Now(),
	}
}

func TestEvaluateNormalReading(t *testing.T) {
	s := newTestAlertService()

	assert.Empty(t, s.Evaluate(reading(models.SensorPH, 7.2)))
	assert.Empty(t, s.Evaluate(reading(models.SensorFlow, 45)))
	assert.Empty(t, s.Evaluate(reading(models.SensorPressure, 4.0)))
}

func TestEvaluateWarningBand(t *testing.T) {
	s := newTestAlertService()

	alerts := s.Evaluate(reading(models.SensorPH, 8.8))
	require.Len(t, alerts, 1)
	assert.Equal(t, models.SeverityWarning, alerts[0].Severity)
	assert.Equal(t, models.SensorPH, alerts[0].Metric)
	assert.Equal(t, 8.8, alerts[0].ActualValue)
	assert.Equal(t, 8.5, alerts[0].ThresholdValue)
	assert.Equal(t, models.AlertStatusActive, alerts[0].Status)
}

func TestEvaluateCriticalBandWins(t *testing.T) {
	s := newTestAlertService()

	// 9.5 breaches both bands; only the critical alert is raised.
	alerts := s.Evaluate(reading(models.SensorPH, 9.5))
	require.Len(t, alerts, 1)
	assert.Equal(t, models.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, 9.0, alerts[0].ThresholdValue)
}

func TestEvaluateLowerBound(t *testing.T) {
	s := newTestAlertService()

	alerts := s.Evaluate(reading(models.SensorPressure, 0.5))
	require.Len(t, alerts, 1)
	assert.Equal(t, models.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, 1.0, alerts[0].ThresholdValue)

	alerts = s.Evaluate(reading(models.SensorPressure, 1.5))
	require.Len(t, alerts, 1)
	assert.Equal(t, models.SeverityWarning, alerts[0].Severity)
	assert.Equal(t, 2.0, alerts[0].ThresholdValue)
}

func TestEvaluateUnknownTypeIgnored(t *testing.T) {
	s := newTestAlertService()
	assert.Empty(t, s.Evaluate(reading("humidity", 9999)))
}

func TestEvaluateBandEdgesAreNormal(t *testing.T) {
	s := newTestAlertService()

	// Band edges are inclusive.
	assert.Empty(t, s.Evaluate(reading(models.SensorPH, 6.5)))
	assert.Empty(t, s.Evaluate(reading(models.SensorPH, 8.5)))
}

func TestNearestBound(t *testing.T) {
	assert.Equal(t, 2.0, nearestBound(1.0, 2.0, 6.0))
	assert.Equal(t, 6.0, nearestBound(7.0, 2.0, 6.0))
}
