package dto

import (
	"time"

	"github.com/projecthub/projecthub-api/internal/models"
	"github.com/projecthub/projecthub-api/internal/services"
)

// ActivityLogDTO represents one ledger entry in API responses
type ActivityLogDTO struct {
	ID        uint64    `json:"id"`
	TaskID    uint64    `json:"task_id"`
	Action    string    `json:"action"`
	ActorID   uint64    `json:"actor_id"`
	ActorName string    `json:"actor_name,omitempty"`
	TaskTitle string    `json:"task_title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalyticsDTO represents the analytics snapshot of a project
type AnalyticsDTO struct {
	TotalTasks     int64                         `json:"total_tasks"`
	StatusCounts   map[models.TaskStatus]int64   `json:"status_counts"`
	PriorityCounts map[models.TaskPriority]int64 `json:"priority_counts"`
	Progress       int                           `json:"progress"`
	RecentActivity []ActivityLogDTO              `json:"recent_activity"`
}

// ToActivityLogDTO converts an ActivityLog model to ActivityLogDTO
func ToActivityLogDTO(entry models.ActivityLog) ActivityLogDTO {
	dto := ActivityLogDTO{
		ID:        entry.ID,
		TaskID:    entry.TaskID,
		Action:    entry.Action,
		ActorID:   entry.UserID,
		CreatedAt: entry.CreatedAt,
	}

	// Include joins if preloaded
	if entry.User.ID != 0 {
		dto.ActorName = entry.User.Name
	}
	if entry.Task.ID != 0 {
		dto.TaskTitle = entry.Task.Title
	}

	return dto
}

// ToActivityLogDTOs converts a slice of entries
func ToActivityLogDTOs(entries []models.ActivityLog) []ActivityLogDTO {
	dtos := make([]ActivityLogDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = ToActivityLogDTO(entry)
	}
	return dtos
}

// ToAnalyticsDTO converts an analytics snapshot
func ToAnalyticsDTO(analytics services.ProjectAnalytics) AnalyticsDTO {
	return AnalyticsDTO{
		TotalTasks:     analytics.TotalTasks,
		StatusCounts:   analytics.StatusCounts,
		PriorityCounts: analytics.PriorityCounts,
		Progress:       analytics.Progress,
		RecentActivity: ToActivityLogDTOs(analytics.RecentActivity),
	}
}
