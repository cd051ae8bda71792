package services

import (
	"github.com/projecthub/projecthub-api/internal/constants"
	apperrors "github.com/projecthub/projecthub-api/internal/errors"
	"github.com/projecthub/projecthub-api/internal/models"
	"github.com/projecthub/projecthub-api/internal/repository"
)

// ActivityService is the read side of the activity ledger. Appends happen
// inside the task repository's transactions so a mutation and its entry are
// never separated.
type ActivityService struct {
	activityRepo repository.ActivityLogRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
	}
}

// ListForTask returns all entries for one task, most recent first.
func (s *ActivityService) ListForTask(taskID uint64) ([]models.ActivityLog, error) {
	entries, err := s.activityRepo.ListByTask(taskID)
	if err != nil {
		return nil, apperrors.Store("failed to list activity", err)
	}
	return entries, nil
}

// RecentForProject returns the latest entries across a project's tasks,
// joined with actor and task. A non-positive limit falls back to the default
// feed size.
func (s *ActivityService) RecentForProject(projectID uint64, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = constants.DefaultRecentActivityLimit
	}

	entries, err := s.activityRepo.RecentByProject(projectID, limit)
	if err != nil {
		return nil, apperrors.Store("failed to list recent activity", err)
	}
	return entries, nil
}
