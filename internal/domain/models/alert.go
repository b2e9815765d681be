package models

import "time"

// AlertSeverity enumerates alert severities.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// AlertStatus enumerates the alert lifecycle states.
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
)

// Alert is a notice derived from comparing a reading to a threshold band.
type Alert struct {
	BaseModel
	SensorID       uint          `gorm:"not null;index" json:"sensor_id"`
	Metric         SensorType    `gorm:"type:varchar(20);not null;index" json:"metric"`
	Severity       AlertSeverity `gorm:"type:varchar(20);not null" json:"severity"`
	Status         AlertStatus   `gorm:"type:varchar(20);default:'active';index" json:"status"`
	Message        string        `gorm:"type:varchar(255);not null" json:"message"`
	ThresholdValue float64       `json:"threshold_value"`
	ActualValue    float64       `json:"actual_value"`
	TriggeredAt    time.Time     `json:"triggered_at"`
	AcknowledgedBy *uint         `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time    `json:"acknowledged_at,omitempty"`
	ResolvedBy     *uint         `json:"resolved_by,omitempty"`
	ResolvedAt     *time.Time    `json:"resolved_at,omitempty"`

	Sensor *Sensor `gorm:"foreignKey:SensorID" json:"sensor,omitempty"`
}
