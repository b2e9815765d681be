package services

import (
	"context"
	"errors"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
	"github.com/vivekvardhan78/JalRakshak/pkg/logger"
)

// InterfaceComplaintService defines the complaint service interface.
type InterfaceComplaintService interface {
	CreateComplaint(complaint *models.Complaint) error
	AttachPhoto(ctx context.Context, complaintID uint, contentType string, photo io.Reader) (*models.Complaint, error)
	GetComplaints(query models.PaginationQuery, status, category string, reporterID uint) ([]models.Complaint, int64, error)
	GetComplaintByID(id uint) (*models.Complaint, error)
	AssignComplaint(id, staffID uint) (*models.Complaint, error)
	UpdateStatus(id uint, to models.ComplaintStatus, note string) (*models.Complaint, error)
	DeleteComplaint(id uint) error
}

// ComplaintService manages citizen issue reports, their photo attachments
// and the status workflow.
type ComplaintService struct {
	DB      *gorm.DB
	Config  *config.Config
	Storage InterfaceStorageService
	Geocode InterfaceGeocodeService
}

// NewComplaintService creates a new complaint service. Storage may be nil
// when object storage is not configured; photo uploads then fail cleanly.
func NewComplaintService(db *gorm.DB, cfg *config.Config, storage InterfaceStorageService, geocode InterfaceGeocodeService) InterfaceComplaintService {
	return &ComplaintService{
		DB:      db,
		Config:  cfg,
		Storage: storage,
		Geocode: geocode,
	}
}

// CreateComplaint stores a new complaint. When a GPS fix is attached the
// address is resolved through the geocoding provider; geocode failures
// degrade to an empty address rather than failing the report.
func (s *ComplaintService) CreateComplaint(complaint *models.Complaint) error {
	if complaint.Status == "" {
		complaint.Status = models.ComplaintStatusPending
	}
	if complaint.Category == "" {
		complaint.Category = models.CategoryOther
	}

	if complaint.Latitude != nil && complaint.Longitude != nil && s.Geocode != nil {
		address, err := s.Geocode.ReverseGeocode(*complaint.Latitude, *complaint.Longitude)
		if err != nil {
			logger.Warning("Reverse geocode failed for complaint at (%.5f, %.5f): %v",
				*complaint.Latitude, *complaint.Longitude, err)
		} else {
			complaint.Address = address
		}
	}

	return s.DB.Create(complaint).Error
}

// AttachPhoto uploads a photo for an existing complaint and stores its URL.
// An upload failure is returned to the caller so the client can retry; the
// complaint itself is kept.
func (s *ComplaintService) AttachPhoto(ctx context.Context, complaintID uint, contentType string, photo io.Reader) (*models.Complaint, error) {
	complaint, err := s.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}

	if s.Storage == nil {
		return nil, errors.New("photo storage is not configured")
	}

	photoURL, err := s.Storage.UploadComplaintPhoto(ctx, complaintID, contentType, photo)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(complaint).Update("photo_url", photoURL).Error; err != nil {
		return nil, err
	}

	return s.GetComplaintByID(complaintID)
}

// GetComplaints lists complaints with pagination and optional filters.
// A non-zero reporterID restricts results to that citizen's own reports.
func (s *ComplaintService) GetComplaints(query models.PaginationQuery, status, category string, reporterID uint) ([]models.Complaint, int64, error) {
	query.Normalize()

	db := s.DB.Model(&models.Complaint{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if reporterID != 0 {
		db = db.Where("reporter_id = ?", reporterID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var complaints []models.Complaint
	err := db.Preload("Reporter").Preload("Assignee").
		Order("created_at desc").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&complaints).Error
	if err != nil {
		return nil, 0, err
	}

	return complaints, total, nil
}

// GetComplaintByID fetches one complaint.
func (s *ComplaintService) GetComplaintByID(id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.DB.Preload("Reporter").Preload("Assignee").First(&complaint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("complaint not found")
		}
		return nil, err
	}
	return &complaint, nil
}

// AssignComplaint assigns a complaint to a staff member and moves a pending
// complaint to in_progress.
func (s *ComplaintService) AssignComplaint(id, staffID uint) (*models.Complaint, error) {
	complaint, err := s.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}

	var staff models.User
	if err := s.DB.First(&staff, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	if staff.Role != models.RoleStaff && staff.Role != models.RoleAdmin {
		return nil, errors.New("assignee must be staff")
	}

	updates := map[string]interface{}{"assignee_id": staffID}
	if complaint.Status == models.ComplaintStatusPending {
		updates["status"] = models.ComplaintStatusInProgress
	}

	if err := s.DB.Model(complaint).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetComplaintByID(id)
}

// UpdateStatus moves a complaint through its workflow, rejecting illegal
// transitions. Resolving records the note and timestamp.
func (s *ComplaintService) UpdateStatus(id uint, to models.ComplaintStatus, note string) (*models.Complaint, error) {
	complaint, err := s.GetComplaintByID(id)
	if err != nil {
		return nil, err
	}

	if !models.ValidComplaintTransition(complaint.Status, to) {
		return nil, errors.New("illegal complaint status transition")
	}

	updates := map[string]interface{}{"status": to}
	if to == models.ComplaintStatusResolved {
		now := time.Now()
		updates["resolved_at"] = now
		if note != "" {
			updates["resolution_note"] = note
		}
	}

	if err := s.DB.Model(complaint).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetComplaintByID(id)
}

// DeleteComplaint removes a complaint.
func (s *ComplaintService) DeleteComplaint(id uint) error {
	complaint, err := s.GetComplaintByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(complaint).Error
}
