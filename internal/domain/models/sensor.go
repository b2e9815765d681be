package models

import "time"

// SensorType enumerates the measurements a station can report.
type SensorType string

const (
	SensorFlow        SensorType = "flow"
	SensorPressure    SensorType = "pressure"
	SensorTemperature SensorType = "temperature"
	SensorPH          SensorType = "ph"
	SensorTurbidity   SensorType = "turbidity"
	SensorQuality     SensorType = "quality"
)

// ValidSensorType reports whether t names a known sensor type.
func ValidSensorType(t SensorType) bool {
	switch t {
	case SensorFlow, SensorPressure, SensorTemperature, SensorPH, SensorTurbidity, SensorQuality:
		return true
	}
	return false
}

// SensorStatus represents the operational status of a monitoring station.
type SensorStatus string

const (
	SensorStatusActive   SensorStatus = "active"
	SensorStatusInactive SensorStatus = "inactive"
	SensorStatusFault    SensorStatus = "fault"
)

// Sensor represents a monitoring station in the distribution network.
type Sensor struct {
	BaseModel
	Code      string       `gorm:"type:varchar(50);unique;not null" json:"code"` // e.g. "WTP-NORTH-01"
	Name      string       `gorm:"type:varchar(100);not null" json:"name"`
	Type      SensorType   `gorm:"type:varchar(20);not null" json:"type"`
	Location  string       `gorm:"type:varchar(100)" json:"location"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Status    SensorStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	// Relations
	Readings []SensorReading   `gorm:"foreignKey:SensorID" json:"readings,omitempty"`
	Tasks    []MaintenanceTask `gorm:"foreignKey:SensorID" json:"tasks,omitempty"`
}

// SensorReading is a single timestamped measurement from a station.
type SensorReading struct {
	BaseModel
	SensorID   uint       `gorm:"not null;index" json:"sensor_id"`
	Type       SensorType `gorm:"type:varchar(20);not null;index" json:"type"`
	Value      float64    `gorm:"not null" json:"value"`
	Unit       string     `gorm:"type:varchar(20)" json:"unit"`
	RecordedAt time.Time  `gorm:"index" json:"recorded_at"`
	Simulated  bool       `gorm:"default:false" json:"simulated"`
	IsAbnormal bool       `gorm:"default:false" json:"is_abnormal"`

	Sensor *Sensor `gorm:"foreignKey:SensorID" json:"sensor,omitempty"`
}
