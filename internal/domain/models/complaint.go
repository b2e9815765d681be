package models

import "time"

// ComplaintStatus enumerates the complaint workflow states.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
)

// ComplaintCategory enumerates the issue categories citizens can report.
type ComplaintCategory string

const (
	CategoryLeakage       ComplaintCategory = "leakage"
	CategoryNoSupply      ComplaintCategory = "no_supply"
	CategoryContamination ComplaintCategory = "contamination"
	CategoryLowPressure   ComplaintCategory = "low_pressure"
	CategoryBilling       ComplaintCategory = "billing"
	CategoryOther         ComplaintCategory = "other"
)

// ValidComplaintTransition reports whether a complaint may move from one
// status to another. The workflow is pending -> in_progress -> resolved,
// with reopening a resolved complaint back to in_progress allowed.
func ValidComplaintTransition(from, to ComplaintStatus) bool {
	switch from {
	case ComplaintStatusPending:
		return to == ComplaintStatusInProgress || to == ComplaintStatusResolved
	case ComplaintStatusInProgress:
		return to == ComplaintStatusResolved
	case ComplaintStatusResolved:
		return to == ComplaintStatusInProgress
	}
	return false
}

// Complaint is a citizen-submitted issue report with optional photo and GPS
// attachment.
type Complaint struct {
	BaseModel
	Title          string            `gorm:"type:varchar(100);not null" json:"title"`
	Description    string            `gorm:"type:text" json:"description"`
	Category       ComplaintCategory `gorm:"type:varchar(30);default:'other'" json:"category"`
	Status         ComplaintStatus   `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ReporterID     uint              `gorm:"not null;index" json:"reporter_id"`
	AssigneeID     *uint             `json:"assignee_id,omitempty"`
	Latitude       *float64          `json:"latitude,omitempty"`
	Longitude      *float64          `json:"longitude,omitempty"`
	Address        string            `gorm:"type:varchar(255)" json:"address,omitempty"` // reverse-geocoded from the GPS fix
	PhotoURL       string            `gorm:"type:varchar(255)" json:"photo_url,omitempty"`
	ResolutionNote string            `gorm:"type:text" json:"resolution_note,omitempty"`
	ResolvedAt     *time.Time        `json:"resolved_at,omitempty"`

	Reporter *User `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Assignee *User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
