package services

import (
	"errors"
	"math"

	apperrors "github.com/projecthub/projecthub-api/internal/errors"
	"github.com/projecthub/projecthub-api/internal/models"
	"github.com/projecthub/projecthub-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectAnalytics is a derived, non-persisted snapshot of a project's task
// counts and recent activity. It is recomputed on every call.
type ProjectAnalytics struct {
	TotalTasks     int64
	StatusCounts   map[models.TaskStatus]int64
	PriorityCounts map[models.TaskPriority]int64
	Progress       int
	RecentActivity []models.ActivityLog
}

// AnalyticsService derives aggregate statistics for a project from the task
// board and the activity ledger.
type AnalyticsService struct {
	taskRepo      repository.TaskRepository
	projectRepo   repository.ProjectRepository
	workspaceRepo repository.WorkspaceRepository
	activity      *ActivityService
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, workspaceRepo repository.WorkspaceRepository, activity *ActivityService) *AnalyticsService {
	return &AnalyticsService{
		taskRepo:      taskRepo,
		projectRepo:   projectRepo,
		workspaceRepo: workspaceRepo,
		activity:      activity,
	}
}

// ForProject computes the analytics snapshot for a project. The requester
// must be a member of the project's workspace.
func (s *AnalyticsService) ForProject(projectID, requesterID uint64) (*ProjectAnalytics, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, apperrors.Store("failed to find project", err)
	}

	if _, err := s.workspaceRepo.FindMember(project.WorkspaceID, requesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotWorkspaceMember
		}
		return nil, apperrors.Store("failed to verify membership", err)
	}

	total, err := s.taskRepo.CountByProject(projectID)
	if err != nil {
		return nil, apperrors.Store("failed to count tasks", err)
	}

	statusCounts, err := s.taskRepo.StatusCounts(projectID)
	if err != nil {
		return nil, apperrors.Store("failed to count statuses", err)
	}
	// Every status key is present in the snapshot, absent ones as zero.
	for _, status := range models.TaskStatuses() {
		if _, ok := statusCounts[status]; !ok {
			statusCounts[status] = 0
		}
	}

	priorityCounts, err := s.taskRepo.PriorityCounts(projectID)
	if err != nil {
		return nil, apperrors.Store("failed to count priorities", err)
	}
	for _, priority := range models.TaskPriorities() {
		if _, ok := priorityCounts[priority]; !ok {
			priorityCounts[priority] = 0
		}
	}

	progress := 0
	if total > 0 {
		done := statusCounts[models.TaskStatusDone]
		progress = int(math.Round(100 * float64(done) / float64(total)))
	}

	recent, err := s.activity.RecentForProject(projectID, 0)
	if err != nil {
		return nil, err
	}

	return &ProjectAnalytics{
		TotalTasks:     total,
		StatusCounts:   statusCounts,
		PriorityCounts: priorityCounts,
		Progress:       progress,
		RecentActivity: recent,
	}, nil
}
