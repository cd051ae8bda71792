package repository

import (
	"github.com/projecthub/projecthub-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Search finds users whose name or email contains the query, restricted
	// to users sharing at least one workspace with requesterID.
	Search(requesterID uint64, query string) ([]models.User, error)
}

// WorkspaceRepository defines the interface for workspace data access
type WorkspaceRepository interface {
	// CreateWithOwner creates a workspace and its owner membership atomically
	CreateWithOwner(workspace *models.Workspace, owner *models.WorkspaceMember) error

	// FindByID finds a workspace by ID
	FindByID(id uint64) (*models.Workspace, error)

	// Update updates a workspace
	Update(workspace *models.Workspace) error

	// Delete deletes a workspace and all its projects, tasks, activity
	// entries and memberships in one transaction
	Delete(id uint64) error

	// AddMember adds a member to a workspace
	AddMember(member *models.WorkspaceMember) error

	// FindMember finds a specific workspace member
	FindMember(workspaceID, userID uint64) (*models.WorkspaceMember, error)

	// ListMembershipsByUserID lists all workspaces a user is a member of,
	// newest workspace first
	ListMembershipsByUserID(userID uint64) ([]models.WorkspaceMember, error)

	// ListMembers lists all members of a workspace with user profiles
	ListMembers(workspaceID uint64) ([]models.WorkspaceMember, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// ListByWorkspace lists all projects of a workspace, newest first
	ListByWorkspace(workspaceID uint64) ([]models.Project, error)

	// Delete deletes a project, its tasks and their activity entries in one
	// transaction
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithLog creates a task and its activity entry atomically
	CreateWithLog(task *models.Task, log *models.ActivityLog) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// UpdateWithLog saves a task and appends an activity entry in one
	// transaction; log may be nil when no entry should be written
	UpdateWithLog(task *models.Task, log *models.ActivityLog) error

	// Delete removes a task together with its activity entries
	Delete(id uint64) error

	// CountByProject counts tasks in a project
	CountByProject(projectID uint64) (int64, error)

	// StatusCounts counts tasks in a project grouped by status
	StatusCounts(projectID uint64) (map[models.TaskStatus]int64, error)

	// PriorityCounts counts tasks in a project grouped by priority
	PriorityCounts(projectID uint64) (map[models.TaskPriority]int64, error)
}

// ActivityLogRepository defines the interface for the append-only ledger
type ActivityLogRepository interface {
	// ListByTask lists entries for a task, most recent first, with actors
	ListByTask(taskID uint64) ([]models.ActivityLog, error)

	// RecentByProject lists the latest entries across all tasks of a
	// project, most recent first, with actor and task joined
	RecentByProject(projectID uint64, limit int) ([]models.ActivityLog, error)
}

// TaskFilter holds filtering options for listing tasks. Provided fields are
// combined with AND semantics; WorkspaceIDs scopes results to workspaces the
// requester belongs to.
type TaskFilter struct {
	WorkspaceIDs []uint64
	ProjectID    *uint64
	Status       *models.TaskStatus
	AssignedTo   *uint64
	Page         int
	PageSize     int
}
