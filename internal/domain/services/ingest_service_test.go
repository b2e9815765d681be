package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return telemetryQoS }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

// fakeSensorService records StoreReading calls and resolves one known code.
type fakeSensorService struct {
	knownCode string
	stored    []*models.SensorReading
}

func (f *fakeSensorService) GetAllSensors() ([]models.Sensor, error) { return nil, nil }
func (f *fakeSensorService) GetSensorByID(id uint) (*models.Sensor, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeSensorService) GetSensorByCode(code string) (*models.Sensor, error) {
	if code != f.knownCode {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Sensor{
		BaseModel: models.BaseModel{ID: 9},
		Code:      code,
		Type:      models.SensorPressure,
		Status:    models.SensorStatusActive,
	}, nil
}
func (f *fakeSensorService) CreateSensor(sensor *models.Sensor) error { return nil }
func (f *fakeSensorService) UpdateSensor(id uint, updates map[string]interface{}) (*models.Sensor, error) {
	return nil, nil
}
func (f *fakeSensorService) DeleteSensor(id uint) error { return nil }
func (f *fakeSensorService) StoreReading(reading *models.SensorReading) ([]models.Alert, error) {
	f.stored = append(f.stored, reading)
	return nil, nil
}
func (f *fakeSensorService) GetReadings(query models.PaginationQuery, sensorID uint, sensorType string, from, to *time.Time) ([]models.SensorReading, int64, error) {
	return nil, 0, nil
}
func (f *fakeSensorService) GetLatestReadings() ([]models.SensorReading, error) { return nil, nil }
func (f *fakeSensorService) ExportReadingsCSV(sensorID uint, from, to *time.Time) ([]byte, error) {
	return nil, nil
}
func (f *fakeSensorService) DeleteReadingsBefore(cutoff time.Time) (int64, error) { return 0, nil }

func TestHandleTelemetry(t *testing.T) {
	sensors := &fakeSensorService{knownCode: "PUMP-7"}
	s := &IngestService{Sensors: sensors}

	msg := &fakeMessage{
		topic:   "jalrakshak/telemetry/PUMP-7",
		payload: []byte(`{"value": 4.2, "type": "pressure", "unit": "bar", "recorded_at": 1756100000}`),
	}
	s.handleTelemetry(nil, msg)

	require.Len(t, sensors.stored, 1)
	reading := sensors.stored[0]
	assert.Equal(t, uint(9), reading.SensorID)
	assert.Equal(t, models.SensorPressure, reading.Type)
	assert.Equal(t, 4.2, reading.Value)
	assert.Equal(t, "bar", reading.Unit)
	assert.Equal(t, time.Unix(1756100000, 0), reading.RecordedAt)
}

func TestHandleTelemetryMalformedPayload(t *testing.T) {
	sensors := &fakeSensorService{knownCode: "PUMP-7"}
	s := &IngestService{Sensors: sensors}

	msg := &fakeMessage{
		topic:   "jalrakshak/telemetry/PUMP-7",
		payload: []byte(`{"value": "not a number"`),
	}
	s.handleTelemetry(nil, msg)

	assert.Empty(t, sensors.stored)
}

func TestHandleTelemetryUnknownSensor(t *testing.T) {
	sensors := &fakeSensorService{knownCode: "PUMP-7"}
	s := &IngestService{Sensors: sensors}

	msg := &fakeMessage{
		topic:   "jalrakshak/telemetry/GHOST-1",
		payload: []byte(`{"value": 1}`),
	}
	s.handleTelemetry(nil, msg)

	assert.Empty(t, sensors.stored)
}
