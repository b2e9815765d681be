package models

import "time"

// TaskStatus enumerates maintenance task states.
type TaskStatus string

const (
	TaskStatusScheduled  TaskStatus = "scheduled"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskPriority enumerates maintenance task priorities.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// ValidTaskTransition reports whether a task may move from one status to
// another. Completed and cancelled are terminal.
func ValidTaskTransition(from, to TaskStatus) bool {
	switch from {
	case TaskStatusScheduled:
		return to == TaskStatusInProgress || to == TaskStatusCompleted || to == TaskStatusCancelled
	case TaskStatusInProgress:
		return to == TaskStatusCompleted || to == TaskStatusCancelled
	}
	return false
}

// MaintenanceTask is a scheduled field work item.
type MaintenanceTask struct {
	BaseModel
	Title       string       `gorm:"type:varchar(100);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	TaskType    string       `gorm:"type:varchar(50)" json:"task_type"` // e.g. "pipe_repair", "valve_inspection", "sensor_calibration"
	Priority    TaskPriority `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(20);default:'scheduled';index" json:"status"`
	DueDate     time.Time    `json:"due_date"`
	AssigneeID  *uint        `json:"assignee_id,omitempty"`
	SensorID    *uint        `json:"sensor_id,omitempty"` // optional station the work concerns
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	Notes       string       `gorm:"type:text" json:"notes,omitempty"`

	Assignee *User   `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Sensor   *Sensor `gorm:"foreignKey:SensorID" json:"sensor,omitempty"`
}

// Overdue reports whether the task is past its due date and still open.
func (t *MaintenanceTask) Overdue(now time.Time) bool {
	if t.Status == TaskStatusCompleted || t.Status == TaskStatusCancelled {
		return false
	}
	return now.After(t.DueDate)
}
