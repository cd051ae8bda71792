package services

import (
	"errors"
	"strings"

	apperrors "github.com/projecthub/projecthub-api/internal/errors"
	"github.com/projecthub/projecthub-api/internal/models"
	"github.com/projecthub/projecthub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNameRequired = apperrors.Validation("project name cannot be empty")
	ErrProjectNotFound     = apperrors.NotFound("project not found")
)

// ProjectService provides business logic for project operations. Projects are
// scoped to their workspace; every operation verifies the requester's
// membership in that workspace.
type ProjectService struct {
	projectRepo   repository.ProjectRepository
	workspaceRepo repository.WorkspaceRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, workspaceRepo repository.WorkspaceRepository) *ProjectService {
	return &ProjectService{
		projectRepo:   projectRepo,
		workspaceRepo: workspaceRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
}

// Create creates a project inside a workspace.
func (s *ProjectService) Create(workspaceID, requesterID uint64, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}

	if _, err := s.workspaceRepo.FindByID(workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, apperrors.Store("failed to find workspace", err)
	}

	if err := s.ensureWorkspaceMember(workspaceID, requesterID); err != nil {
		return nil, err
	}

	project := &models.Project{
		WorkspaceID: workspaceID,
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, apperrors.Store("failed to create project", err)
	}

	return project, nil
}

// List returns all projects of a workspace.
func (s *ProjectService) List(workspaceID, requesterID uint64) ([]models.Project, error) {
	if _, err := s.workspaceRepo.FindByID(workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, apperrors.Store("failed to find workspace", err)
	}

	if err := s.ensureWorkspaceMember(workspaceID, requesterID); err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, apperrors.Store("failed to list projects", err)
	}

	return projects, nil
}

// Get returns a project if the requester is a member of its workspace.
func (s *ProjectService) Get(projectID, requesterID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, apperrors.Store("failed to find project", err)
	}

	if err := s.ensureWorkspaceMember(project.WorkspaceID, requesterID); err != nil {
		return nil, err
	}

	return project, nil
}

// Delete removes a project and cascades to its tasks and their activity
// entries.
func (s *ProjectService) Delete(projectID, requesterID uint64) error {
	if _, err := s.Get(projectID, requesterID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return apperrors.Store("failed to delete project", err)
	}

	return nil
}

// ensureWorkspaceMember verifies that a user belongs to a workspace.
func (s *ProjectService) ensureWorkspaceMember(workspaceID, userID uint64) error {
	_, err := s.workspaceRepo.FindMember(workspaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotWorkspaceMember
		}
		return apperrors.Store("failed to verify membership", err)
	}
	return nil
}
