package models

import "time"

// SimulatorSetting persists the sensor simulator state across restarts.
type SimulatorSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IsEnabled bool      `json:"is_enabled"`
	StartTime time.Time `json:"start_time"`
}
