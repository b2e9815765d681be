package models

// UserRole represents the access level of an account.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStaff   UserRole = "staff"
	RoleCitizen UserRole = "citizen"
)

// User represents an account: utility admins, field staff and citizens.
type User struct {
	BaseModel
	Username string   `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password string   `gorm:"type:varchar(255);not null" json:"-"`
	Email    string   `gorm:"type:varchar(100);unique;not null" json:"email"`
	Phone    string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role     UserRole `gorm:"type:varchar(20);default:'citizen'" json:"role"`
	Status   string   `gorm:"type:varchar(20);default:'active'" json:"status"` // active, disabled

	// Relations
	Complaints    []Complaint       `gorm:"foreignKey:ReporterID" json:"complaints,omitempty"`
	AssignedTasks []MaintenanceTask `gorm:"foreignKey:AssigneeID" json:"assigned_tasks,omitempty"`
}
