package services

import (
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
	"github.com/vivekvardhan78/JalRakshak/pkg/logger"
)

// InterfaceSimulatorService defines the telemetry simulator interface.
type InterfaceSimulatorService interface {
	Start() error
	Stop() error
	IsRunning() bool
	Resume() error
}

// simulated value profile per sensor type: a resting value plus the
// largest random step per tick.
type simProfile struct {
	Baseline float64
	MaxStep  float64
}

var simProfiles = map[models.SensorType]simProfile{
	models.SensorFlow:        {Baseline: 45, MaxStep: 4},
	models.SensorPressure:    {Baseline: 4.0, MaxStep: 0.3},
	models.SensorTemperature: {Baseline: 20, MaxStep: 1.5},
	models.SensorPH:          {Baseline: 7.2, MaxStep: 0.15},
	models.SensorTurbidity:   {Baseline: 0.4, MaxStep: 0.1},
	models.SensorQuality:     {Baseline: 85, MaxStep: 3},
}

// SimulatorService feeds synthetic readings through the normal pipeline so
// the dashboard works without live field units. The enabled flag survives
// restarts.
type SimulatorService struct {
	DB      *gorm.DB
	Config  *config.Config
	Sensors InterfaceSensorService

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	rng     *rand.Rand
	last    map[uint]float64
}

// NewSimulatorService creates a new simulator.
func NewSimulatorService(db *gorm.DB, cfg *config.Config, sensors InterfaceSensorService) InterfaceSimulatorService {
	return &SimulatorService{
		DB:      db,
		Config:  cfg,
		Sensors: sensors,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		last:    make(map[uint]float64),
	}
}

// Start begins emitting readings and persists the enabled flag.
func (s *SimulatorService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	setting := models.SimulatorSetting{ID: 1, IsEnabled: true, StartTime: time.Now()}
	if err := s.DB.Save(&setting).Error; err != nil {
		return err
	}

	s.stopCh = make(chan struct{})
	s.running = true
	go s.run(s.stopCh)

	logger.Info("Simulator started, interval %ds", s.Config.SimulatorIntervalSeconds)
	return nil
}

// Stop halts emission and persists the disabled flag.
func (s *SimulatorService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	if err := s.DB.Model(&models.SimulatorSetting{}).Where("id = ?", 1).
		Update("is_enabled", false).Error; err != nil {
		return err
	}

	close(s.stopCh)
	s.running = false

	logger.Info("Simulator stopped")
	return nil
}

// IsRunning reports whether the simulator loop is active.
func (s *SimulatorService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Resume restarts the simulator after a process restart when it was left
// enabled.
func (s *SimulatorService) Resume() error {
	var setting models.SimulatorSetting
	err := s.DB.First(&setting, 1).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	if !setting.IsEnabled {
		return nil
	}
	return s.Start()
}

func (s *SimulatorService) run(stopCh chan struct{}) {
	interval := time.Duration(s.Config.SimulatorIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick emits one synthetic reading per active station.
func (s *SimulatorService) tick() {
	sensors, err := s.Sensors.GetAllSensors()
	if err != nil {
		logger.Error("Simulator could not list sensors: %v", err)
		return
	}

	for i := range sensors {
		sensor := &sensors[i]
		if sensor.Status != models.SensorStatusActive {
			continue
		}

		reading := &models.SensorReading{
			SensorID:   sensor.ID,
			Type:       sensor.Type,
			Value:      s.nextValue(sensor),
			RecordedAt: time.Now(),
			Simulated:  true,
		}

		if _, err := s.Sensors.StoreReading(reading); err != nil {
			logger.Warning("Simulator reading for %s rejected: %v", sensor.Code, err)
		}
	}
}

// nextValue produces a bounded random walk around the type's baseline so
// consecutive readings look like a real signal instead of noise.
func (s *SimulatorService) nextValue(sensor *models.Sensor) float64 {
	profile, ok := simProfiles[sensor.Type]
	if !ok {
		profile = simProfile{Baseline: 50, MaxStep: 5}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.last[sensor.ID]
	if !ok {
		prev = profile.Baseline
	}

	step := (s.rng.Float64()*2 - 1) * profile.MaxStep
	next := prev + step

	// Pull drifting values back toward the baseline.
	if diff := next - profile.Baseline; diff > profile.MaxStep*5 || diff < -profile.MaxStep*5 {
		next = prev - step
	}
	if next < 0 && sensor.Type != models.SensorTemperature {
		next = 0
	}

	s.last[sensor.ID] = next
	return next
}
