package repository

import (
	"github.com/projecthub/projecthub-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Search finds users by name/email substring, limited to users who share a
// workspace with the requester. The requester always matches their own name.
func (r *GormUserRepository) Search(requesterID uint64, query string) ([]models.User, error) {
	pattern := "%" + query + "%"

	visibleUsers := r.db.Model(&models.WorkspaceMember{}).
		Select("workspace_members.user_id").
		Joins("JOIN workspace_members requester ON requester.workspace_id = workspace_members.workspace_id").
		Where("requester.user_id = ?", requesterID)

	var users []models.User
	err := r.db.Model(&models.User{}).
		Where("users.id IN (?) OR users.id = ?", visibleUsers, requesterID).
		Where("users.name LIKE ? OR users.email LIKE ?", pattern, pattern).
		Order("users.name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
