package services

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
	"github.com/vivekvardhan78/JalRakshak/pkg/logger"
)

// InterfaceIngestService defines the MQTT telemetry ingest interface.
type InterfaceIngestService interface {
	Connect() error
	Disconnect()
	IsConnected() bool
}

// Telemetry topics. Field units publish one reading per message to
// jalrakshak/telemetry/<sensor-code>.
const (
	TopicTelemetry = "jalrakshak/telemetry/+"

	telemetryQoS = 1
)

// TelemetryMessage is the payload a field unit publishes.
type TelemetryMessage struct {
	Value      float64 `json:"value"`
	Type       string  `json:"type,omitempty"`
	Unit       string  `json:"unit,omitempty"`
	RecordedAt int64   `json:"recorded_at,omitempty"` // Unix seconds
}

// IngestService bridges the MQTT broker to the reading pipeline. Readings
// arriving over MQTT go through the same validation, threshold evaluation
// and broadcast path as HTTP submissions.
type IngestService struct {
	Config         *config.Config
	Sensors        InterfaceSensorService
	Client         mqtt.Client
	connected      bool
	connectedMutex sync.RWMutex
}

// NewIngestService creates the ingest service and prepares its MQTT client.
func NewIngestService(cfg *config.Config, sensors InterfaceSensorService) InterfaceIngestService {
	service := &IngestService{
		Config:  cfg,
		Sensors: sensors,
	}
	service.setupMQTTClient()
	return service
}

func (s *IngestService) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.MQTTBrokerURL)
	// Unique client ID so multiple instances do not kick each other off.
	opts.SetClientID(fmt.Sprintf("jalrakshak-ingest-%s", uuid.New().String()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Second * 30)
	opts.SetKeepAlive(time.Second * 60)
	opts.SetPingTimeout(time.Second * 10)
	opts.SetCleanSession(true)

	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}

	if strings.HasPrefix(s.Config.MQTTBrokerURL, "ssl://") || strings.HasPrefix(s.Config.MQTTBrokerURL, "tls://") {
		opts.SetTLSConfig(&tls.Config{InsecureSkipVerify: true})
	}

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logger.Warning("[MQTT] Connection lost: %v", err)
		s.connectedMutex.Lock()
		s.connected = false
		s.connectedMutex.Unlock()
	})

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Info("[MQTT] Connected to %s", s.Config.MQTTBrokerURL)
		s.connectedMutex.Lock()
		s.connected = true
		s.connectedMutex.Unlock()

		if token := client.Subscribe(TopicTelemetry, telemetryQoS, s.handleTelemetry); token.Wait() && token.Error() != nil {
			logger.Error("[MQTT] Subscribe to %s failed: %v", TopicTelemetry, token.Error())
		}
	})

	opts.SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
		logger.Info("[MQTT] Reconnecting...")
	})

	s.Client = mqtt.NewClient(opts)
}

// Connect dials the broker with retries and exponential backoff.
func (s *IngestService) Connect() error {
	if s.IsConnected() {
		return nil
	}

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		token := s.Client.Connect()
		if token.WaitTimeout(5*time.Second) && token.Error() == nil {
			return nil
		}
		wait := time.Duration(1<<uint(i)) * time.Second
		logger.Warning("[MQTT] Connect attempt %d failed, retrying in %s", i+1, wait)
		time.Sleep(wait)
	}

	return fmt.Errorf("failed to connect to MQTT broker %s after %d attempts", s.Config.MQTTBrokerURL, maxRetries)
}

// Disconnect closes the broker connection.
func (s *IngestService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
	s.connectedMutex.Lock()
	s.connected = false
	s.connectedMutex.Unlock()
}

// IsConnected reports the broker connection state.
func (s *IngestService) IsConnected() bool {
	s.connectedMutex.RLock()
	defer s.connectedMutex.RUnlock()
	return s.connected && s.Client.IsConnected()
}

// handleTelemetry parses one telemetry message and feeds it into the
// reading pipeline. Malformed or unknown-sensor messages are logged and
// dropped so a bad unit cannot wedge the subscription.
func (s *IngestService) handleTelemetry(client mqtt.Client, msg mqtt.Message) {
	parts := strings.Split(msg.Topic(), "/")
	code := parts[len(parts)-1]
	if code == "" {
		logger.Warning("[MQTT] Telemetry on topic %s carries no sensor code", msg.Topic())
		return
	}

	var payload TelemetryMessage
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		logger.Warning("[MQTT] Malformed telemetry from %s: %v", code, err)
		return
	}

	sensor, err := s.Sensors.GetSensorByCode(code)
	if err != nil {
		logger.Warning("[MQTT] Telemetry from unknown sensor %s: %v", code, err)
		return
	}

	reading := &models.SensorReading{
		SensorID: sensor.ID,
		Type:     models.SensorType(payload.Type),
		Value:    payload.Value,
		Unit:     payload.Unit,
	}
	if payload.RecordedAt > 0 {
		reading.RecordedAt = time.Unix(payload.RecordedAt, 0)
	}

	if _, err := s.Sensors.StoreReading(reading); err != nil {
		logger.Warning("[MQTT] Dropping reading from %s: %v", code, err)
	}
}
