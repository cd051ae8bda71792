package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/projecthub/projecthub-api/internal/errors"
	"github.com/projecthub/projecthub-api/internal/models"
	"github.com/projecthub/projecthub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = apperrors.NotFound("task not found")
	ErrTitleRequired     = apperrors.Validation("title is required")
	ErrTitleEmpty        = apperrors.Validation("title cannot be empty")
	ErrInvalidStatus     = apperrors.Validation("status must be one of TODO, IN_PROGRESS, DONE")
	ErrInvalidPriority   = apperrors.Validation("priority must be one of LOW, MEDIUM, HIGH")
	ErrAssigneeNotMember = apperrors.Validation("assignee must be a member of the task's workspace")
)

// Ledger action descriptions.
const (
	actionCreatedTask   = "created task"
	actionUpdatedTask   = "updated task details"
	actionChangedStatus = "changed status to %s"
)

// TaskService implements the task board: creation, filtered listing, partial
// updates, status transitions and deletion. Every mutation appends exactly one
// activity entry in the same transaction as the write.
type TaskService struct {
	taskRepo      repository.TaskRepository
	projectRepo   repository.ProjectRepository
	workspaceRepo repository.WorkspaceRepository
	activity      *ActivityService
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, workspaceRepo repository.WorkspaceRepository, activity *ActivityService) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		projectRepo:   projectRepo,
		workspaceRepo: workspaceRepo,
		activity:      activity,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
	AssignedTo  *uint64
}

// ListTasksInput represents filters for listing tasks. All fields are
// optional and combine with AND semantics.
type ListTasksInput struct {
	ProjectID  *uint64
	Status     *models.TaskStatus
	AssignedTo *uint64
	Page       int
	PageSize   int
}

// UpdateTaskInput represents a partial update. Nil pointers leave the field
// unchanged; the Clear flags unset optional fields explicitly.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Status        *models.TaskStatus
	Priority      *models.TaskPriority
	DueDate       *time.Time
	ClearDueDate  bool
	AssignedTo    *uint64
	ClearAssignee bool
}

// Create creates a task in a project and records the creation in the ledger.
func (s *TaskService) Create(projectID, requesterID uint64, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureWorkspaceMember(project.WorkspaceID, requesterID); err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	if input.AssignedTo != nil {
		if err := s.ensureAssignable(project.WorkspaceID, *input.AssignedTo); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		ProjectID:   projectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		AssignedTo:  input.AssignedTo,
	}

	entry := &models.ActivityLog{
		UserID: requesterID,
		Action: actionCreatedTask,
	}

	if err := s.taskRepo.CreateWithLog(task, entry); err != nil {
		return nil, apperrors.Store("failed to create task", err)
	}

	return s.reloadTask(task.ID)
}

// List returns tasks matching the filters, scoped to workspaces the requester
// belongs to.
func (s *TaskService) List(requesterID uint64, input ListTasksInput) ([]models.Task, int64, error) {
	if input.Status != nil && !models.ValidTaskStatus(*input.Status) {
		return nil, 0, ErrInvalidStatus
	}

	var workspaceIDs []uint64
	if input.ProjectID != nil {
		project, err := s.findProject(*input.ProjectID)
		if err != nil {
			return nil, 0, err
		}
		if err := s.ensureWorkspaceMember(project.WorkspaceID, requesterID); err != nil {
			return nil, 0, err
		}
		workspaceIDs = []uint64{project.WorkspaceID}
	} else {
		memberships, err := s.workspaceRepo.ListMembershipsByUserID(requesterID)
		if err != nil {
			return nil, 0, apperrors.Store("failed to fetch memberships", err)
		}
		for _, m := range memberships {
			workspaceIDs = append(workspaceIDs, m.WorkspaceID)
		}
		if len(workspaceIDs) == 0 {
			return []models.Task{}, 0, nil
		}
	}

	filter := repository.TaskFilter{
		WorkspaceIDs: workspaceIDs,
		ProjectID:    input.ProjectID,
		Status:       input.Status,
		AssignedTo:   input.AssignedTo,
		Page:         input.Page,
		PageSize:     input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, apperrors.Store("failed to list tasks", err)
	}

	return tasks, total, nil
}

// Get returns a task if the requester is a member of its workspace.
func (s *TaskService) Get(taskID, requesterID uint64) (*models.Task, error) {
	task, _, err := s.findTaskWithAccess(taskID, requesterID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a partial update and records exactly one ledger entry when
// anything changed. An empty partial is a permitted no-op.
func (s *TaskService) Update(taskID, requesterID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, project, err := s.findTaskWithAccess(taskID, requesterID)
	if err != nil {
		return nil, err
	}

	changed := false
	statusChanged := false

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
		changed = true
	}
	if input.Description != nil {
		task.Description = *input.Description
		changed = true
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		if task.Status != *input.Status {
			statusChanged = true
		}
		task.Status = *input.Status
		changed = true
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
		changed = true
	}
	if input.ClearDueDate {
		task.DueDate = nil
		changed = true
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
		changed = true
	}
	if input.ClearAssignee {
		task.AssignedTo = nil
		changed = true
	} else if input.AssignedTo != nil {
		if err := s.ensureAssignable(project.WorkspaceID, *input.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
		changed = true
	}

	if !changed {
		return s.reloadTask(task.ID)
	}

	action := actionUpdatedTask
	if statusChanged {
		action = fmt.Sprintf(actionChangedStatus, task.Status)
	}

	entry := &models.ActivityLog{
		UserID: requesterID,
		Action: action,
	}

	if err := s.taskRepo.UpdateWithLog(task, entry); err != nil {
		return nil, apperrors.Store("failed to update task", err)
	}

	return s.reloadTask(task.ID)
}

// ToggleStatus sets a task's status directly, for moving cards between board
// columns. Any of the three statuses may be set from any other.
func (s *TaskService) ToggleStatus(taskID, requesterID uint64, status models.TaskStatus) (*models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return nil, ErrInvalidStatus
	}

	task, _, err := s.findTaskWithAccess(taskID, requesterID)
	if err != nil {
		return nil, err
	}

	task.Status = status

	entry := &models.ActivityLog{
		UserID: requesterID,
		Action: fmt.Sprintf(actionChangedStatus, status),
	}

	if err := s.taskRepo.UpdateWithLog(task, entry); err != nil {
		return nil, apperrors.Store("failed to change status", err)
	}

	return s.reloadTask(task.ID)
}

// Delete removes a task together with its activity entries.
func (s *TaskService) Delete(taskID, requesterID uint64) error {
	if _, _, err := s.findTaskWithAccess(taskID, requesterID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return apperrors.Store("failed to delete task", err)
	}

	return nil
}

// Logs returns the ledger entries for a task, most recent first.
func (s *TaskService) Logs(taskID, requesterID uint64) ([]models.ActivityLog, error) {
	if _, _, err := s.findTaskWithAccess(taskID, requesterID); err != nil {
		return nil, err
	}

	return s.activity.ListForTask(taskID)
}

// findTaskWithAccess loads a task and its project, verifying that the
// requester belongs to the owning workspace.
func (s *TaskService) findTaskWithAccess(taskID, requesterID uint64) (*models.Task, *models.Project, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, apperrors.Store("failed to find task", err)
	}

	project, err := s.findProject(task.ProjectID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.ensureWorkspaceMember(project.WorkspaceID, requesterID); err != nil {
		return nil, nil, err
	}

	return task, project, nil
}

// reloadTask re-reads a task after a write so responses carry the stored
// state with the assignee resolved.
func (s *TaskService) reloadTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignee")
	if err != nil {
		return nil, apperrors.Store("failed to reload task", err)
	}
	return task, nil
}

func (s *TaskService) findProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, apperrors.Store("failed to find project", err)
	}
	return project, nil
}

// ensureWorkspaceMember verifies that a user belongs to a workspace.
func (s *TaskService) ensureWorkspaceMember(workspaceID, userID uint64) error {
	_, err := s.workspaceRepo.FindMember(workspaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotWorkspaceMember
		}
		return apperrors.Store("failed to verify membership", err)
	}
	return nil
}

// ensureAssignable verifies that a prospective assignee belongs to the
// workspace; a non-member assignee is a validation failure, not a forbidden.
func (s *TaskService) ensureAssignable(workspaceID, userID uint64) error {
	_, err := s.workspaceRepo.FindMember(workspaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotMember
		}
		return apperrors.Store("failed to verify assignee", err)
	}
	return nil
}
