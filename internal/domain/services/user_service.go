package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/models"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

// InterfaceUserService defines the user service interface.
type InterfaceUserService interface {
	Register(user *models.User, password string) error
	GetUsers(query models.PaginationQuery, role string) ([]models.User, int64, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateUser(id uint, updates map[string]interface{}) (*models.User, error)
	ChangePassword(id uint, oldPassword, newPassword string) error
	SetStatus(id uint, status string) (*models.User, error)
	DeleteUser(id uint) error
}

// UserService manages accounts. Citizens self-register; staff and admin
// accounts are created by an admin through the same path with the role set.
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService creates a new user service.
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// Register creates an account with a bcrypt-hashed password. Username and
// email must be unused.
func (s *UserService) Register(user *models.User, password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	var count int64
	if err := s.DB.Model(&models.User{}).
		Where("username = ? OR email = ?", user.Username, user.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("username or email already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	if user.Role == "" {
		user.Role = models.RoleCitizen
	}
	if user.Status == "" {
		user.Status = "active"
	}

	return s.DB.Create(user).Error
}

// GetUsers lists accounts with pagination and an optional role filter.
func (s *UserService) GetUsers(query models.PaginationQuery, role string) ([]models.User, int64, error) {
	query.Normalize()

	db := s.DB.Model(&models.User{})
	if role != "" {
		db = db.Where("role = ?", role)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := db.Order("id").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// GetUserByID fetches one account.
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername fetches one account by its login name.
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates profile fields. Password and role changes go through
// their dedicated paths.
func (s *UserService) UpdateUser(id uint, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	delete(updates, "password")

	if email, ok := updates["email"].(string); ok && email != user.Email {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("email = ? AND id != ?", email, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New("username or email already taken")
		}
	}

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(id)
}

// ChangePassword verifies the old password before setting the new one.
func (s *UserService) ChangePassword(id uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("incorrect password")
	}
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.DB.Model(user).Update("password", string(hashed)).Error
}

// SetStatus enables or disables an account.
func (s *UserService) SetStatus(id uint, status string) (*models.User, error) {
	if status != "active" && status != "disabled" {
		return nil, errors.New("unknown account status")
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(user).Update("status", status).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(id)
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(id uint) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(user).Error
}
