package repository

import (
	"github.com/projecthub/projecthub-api/internal/models"
	"gorm.io/gorm"
)

// GormActivityLogRepository is a GORM implementation of ActivityLogRepository
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// ListByTask lists entries for a task, most recent first
func (r *GormActivityLogRepository) ListByTask(taskID uint64) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	if err := r.db.Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// RecentByProject lists the latest entries across all tasks of a project,
// joined with the actor and the task.
func (r *GormActivityLogRepository) RecentByProject(projectID uint64, limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	if err := r.db.Preload("User").Preload("Task").
		Joins("JOIN tasks ON tasks.id = activity_logs.task_id").
		Where("tasks.project_id = ?", projectID).
		Where("tasks.deleted_at IS NULL").
		Order("activity_logs.created_at DESC, activity_logs.id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
