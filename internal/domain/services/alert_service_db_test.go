package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection so every statement sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Sensor{}, &models.SensorReading{}, &models.Alert{}))
	return db
}

func TestProcessReadingDedup(t *testing.T) {
	db := newTestDB(t)
	svc := &AlertService{DB: db, Rules: config.DefaultThresholdRules()}

	reading := &models.SensorReading{SensorID: 1, Type: models.SensorFlow, Value: 0, RecordedAt: time.Now()}

	created, err := svc.ProcessReading(reading, svc.Evaluate(reading))
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, models.SeverityCritical, created[0].Severity)

	// The same breach again must not stack a second active alert.
	created, err = svc.ProcessReading(reading, svc.Evaluate(reading))
	require.NoError(t, err)
	assert.Empty(t, created)

	var count int64
	require.NoError(t, db.Model(&models.Alert{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProcessReadingRecovery(t *testing.T) {
	db := newTestDB(t)
	svc := &AlertService{DB: db, Rules: config.DefaultThresholdRules()}

	breach := &models.SensorReading{SensorID: 2, Type: models.SensorPH, Value: 9.5, RecordedAt: time.Now()}
	_, err := svc.ProcessReading(breach, svc.Evaluate(breach))
	require.NoError(t, err)

	normal := &models.SensorReading{SensorID: 2, Type: models.SensorPH, Value: 7.0, RecordedAt: time.Now()}
	notices, err := svc.ProcessReading(normal, svc.Evaluate(normal))
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, models.SeverityInfo, notices[0].Severity)

	var open int64
	require.NoError(t, db.Model(&models.Alert{}).
		Where("status != ? AND severity != ?", models.AlertStatusResolved, models.SeverityInfo).
		Count(&open).Error)
	assert.Equal(t, int64(0), open)
}
