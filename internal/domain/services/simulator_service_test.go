package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
)

func newTestSimulator() *SimulatorService {
	return &SimulatorService{
		rng:  rand.New(rand.NewSource(1)),
		last: make(map[uint]float64),
	}
}

func TestNextValueStartsAtBaseline(t *testing.T) {
	s := newTestSimulator()
	sensor := &models.Sensor{BaseModel: models.BaseModel{ID: 1}, Type: models.SensorPH}

	profile := simProfiles[models.SensorPH]
	value := s.nextValue(sensor)

	assert.InDelta(t, profile.Baseline, value, profile.MaxStep)
}

func TestNextValueStaysBounded(t *testing.T) {
	s := newTestSimulator()
	sensor := &models.Sensor{BaseModel: models.BaseModel{ID: 2}, Type: models.SensorPressure}

	profile := simProfiles[models.SensorPressure]
	for i := 0; i < 1000; i++ {
		value := s.nextValue(sensor)
		assert.InDelta(t, profile.Baseline, value, profile.MaxStep*6,
			"walk escaped its band on step %d", i)
	}
}

func TestNextValueNeverNegative(t *testing.T) {
	s := newTestSimulator()
	sensor := &models.Sensor{BaseModel: models.BaseModel{ID: 3}, Type: models.SensorTurbidity}

	for i := 0; i < 1000; i++ {
		assert.GreaterOrEqual(t, s.nextValue(sensor), 0.0)
	}
}

func TestNextValueUnknownTypeUsesFallback(t *testing.T) {
	s := newTestSimulator()
	sensor := &models.Sensor{BaseModel: models.BaseModel{ID: 4}, Type: "humidity"}

	value := s.nextValue(sensor)
	assert.InDelta(t, 50, value, 5)
}
