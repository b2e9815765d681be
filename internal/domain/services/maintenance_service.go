package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

// InterfaceMaintenanceService defines the maintenance task service interface.
type InterfaceMaintenanceService interface {
	CreateTask(task *models.MaintenanceTask) error
	GetTasks(query models.PaginationQuery, status, priority string, assigneeID uint, overdueOnly bool) ([]models.MaintenanceTask, int64, error)
	GetTaskByID(id uint) (*models.MaintenanceTask, error)
	UpdateTask(id uint, updates map[string]interface{}) (*models.MaintenanceTask, error)
	CompleteTask(id uint, notes string) (*models.MaintenanceTask, error)
	CancelTask(id uint, notes string) (*models.MaintenanceTask, error)
	DeleteTask(id uint) error
	CountOpen() (int64, error)
}

// MaintenanceService manages scheduled field work items.
type MaintenanceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewMaintenanceService creates a new maintenance service.
func NewMaintenanceService(db *gorm.DB, cfg *config.Config) InterfaceMaintenanceService {
	return &MaintenanceService{
		DB:     db,
		Config: cfg,
	}
}

// CreateTask schedules a new work item.
func (s *MaintenanceService) CreateTask(task *models.MaintenanceTask) error {
	if task.Status == "" {
		task.Status = models.TaskStatusScheduled
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	if task.AssigneeID != nil {
		var assignee models.User
		if err := s.DB.First(&assignee, *task.AssigneeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("user not found")
			}
			return err
		}
		if assignee.Role != models.RoleStaff && assignee.Role != models.RoleAdmin {
			return errors.New("assignee must be staff")
		}
	}

	return s.DB.Create(task).Error
}

// GetTasks lists work items with pagination and optional filters.
func (s *MaintenanceService) GetTasks(query models.PaginationQuery, status, priority string, assigneeID uint, overdueOnly bool) ([]models.MaintenanceTask, int64, error) {
	query.Normalize()

	db := s.DB.Model(&models.MaintenanceTask{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if priority != "" {
		db = db.Where("priority = ?", priority)
	}
	if assigneeID != 0 {
		db = db.Where("assignee_id = ?", assigneeID)
	}
	if overdueOnly {
		db = db.Where("due_date < ? AND status NOT IN ?",
			time.Now(), []models.TaskStatus{models.TaskStatusCompleted, models.TaskStatusCancelled})
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.MaintenanceTask
	err := db.Preload("Assignee").Preload("Sensor").
		Order("due_date").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// GetTaskByID fetches one work item.
func (s *MaintenanceService) GetTaskByID(id uint) (*models.MaintenanceTask, error) {
	var task models.MaintenanceTask
	if err := s.DB.Preload("Assignee").Preload("Sensor").First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("maintenance task not found")
		}
		return nil, err
	}
	return &task, nil
}

// UpdateTask updates work item fields. Status changes must follow the
// workflow; use CompleteTask/CancelTask for terminal transitions.
func (s *MaintenanceService) UpdateTask(id uint, updates map[string]interface{}) (*models.MaintenanceTask, error) {
	task, err := s.GetTaskByID(id)
	if err != nil {
		return nil, err
	}

	if raw, ok := updates["status"]; ok {
		to, ok := raw.(string)
		if !ok || !models.ValidTaskTransition(task.Status, models.TaskStatus(to)) {
			return nil, errors.New("illegal task status transition")
		}
	}

	if err := s.DB.Model(task).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetTaskByID(id)
}

// CompleteTask marks a work item completed.
func (s *MaintenanceService) CompleteTask(id uint, notes string) (*models.MaintenanceTask, error) {
	task, err := s.GetTaskByID(id)
	if err != nil {
		return nil, err
	}

	if !models.ValidTaskTransition(task.Status, models.TaskStatusCompleted) {
		return nil, errors.New("illegal task status transition")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.TaskStatusCompleted,
		"completed_at": now,
	}
	if notes != "" {
		updates["notes"] = notes
	}

	if err := s.DB.Model(task).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetTaskByID(id)
}

// CancelTask cancels a work item.
func (s *MaintenanceService) CancelTask(id uint, notes string) (*models.MaintenanceTask, error) {
	task, err := s.GetTaskByID(id)
	if err != nil {
		return nil, err
	}

	if !models.ValidTaskTransition(task.Status, models.TaskStatusCancelled) {
		return nil, errors.New("illegal task status transition")
	}

	updates := map[string]interface{}{"status": models.TaskStatusCancelled}
	if notes != "" {
		updates["notes"] = notes
	}

	if err := s.DB.Model(task).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetTaskByID(id)
}

// DeleteTask removes a work item.
func (s *MaintenanceService) DeleteTask(id uint) error {
	task, err := s.GetTaskByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(task).Error
}

// CountOpen returns the number of tasks neither completed nor cancelled.
func (s *MaintenanceService) CountOpen() (int64, error) {
	var count int64
	err := s.DB.Model(&models.MaintenanceTask{}).
		Where("status NOT IN ?", []models.TaskStatus{models.TaskStatusCompleted, models.TaskStatusCancelled}).
		Count(&count).Error
	return count, err
}
