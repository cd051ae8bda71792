package services

import (
	"errors"
	"strings"
	"time"

	apperrors "github.com/projecthub/projecthub-api/internal/errors"
	"github.com/projecthub/projecthub-api/internal/models"
	"github.com/projecthub/projecthub-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrWorkspaceNameRequired = apperrors.Validation("workspace name cannot be empty")
	ErrWorkspaceNotFound     = apperrors.NotFound("workspace not found")
	ErrNotWorkspaceMember    = apperrors.Forbidden("you are not a member of this workspace")
	ErrNotWorkspaceOwner     = apperrors.Forbidden("only the workspace owner can perform this action")
	ErrMemberNotFound        = apperrors.NotFound("user not found")
	ErrAlreadyMember         = apperrors.Conflict("user is already a member of this workspace")
)

// WorkspaceService provides business logic for workspace operations. Every
// call takes the requester's resolved user ID and enforces membership before
// touching workspace-scoped data.
type WorkspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	userRepo      repository.UserRepository
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(workspaceRepo repository.WorkspaceRepository, userRepo repository.UserRepository) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
	}
}

// Create creates a workspace and adds the creator as its owner.
func (s *WorkspaceService) Create(ownerID uint64, name string) (*models.Workspace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrWorkspaceNameRequired
	}

	workspace := &models.Workspace{
		Name:    name,
		OwnerID: ownerID,
	}

	owner := &models.WorkspaceMember{
		UserID:   ownerID,
		Role:     models.RoleOwner,
		JoinedAt: time.Now(),
	}

	if err := s.workspaceRepo.CreateWithOwner(workspace, owner); err != nil {
		return nil, apperrors.Store("failed to create workspace", err)
	}

	return workspace, nil
}

// ListForUser returns memberships for all workspaces the user belongs to,
// newest workspace first.
func (s *WorkspaceService) ListForUser(userID uint64) ([]models.WorkspaceMember, error) {
	memberships, err := s.workspaceRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, apperrors.Store("failed to list workspaces", err)
	}
	return memberships, nil
}

// Get returns a workspace if the requester is a member.
func (s *WorkspaceService) Get(workspaceID, requesterID uint64) (*models.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, apperrors.Store("failed to find workspace", err)
	}

	if err := s.ensureMember(workspaceID, requesterID); err != nil {
		return nil, err
	}

	return workspace, nil
}

// Update renames a workspace. Any member may rename.
func (s *WorkspaceService) Update(workspaceID, requesterID uint64, name string) (*models.Workspace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrWorkspaceNameRequired
	}

	workspace, err := s.Get(workspaceID, requesterID)
	if err != nil {
		return nil, err
	}

	workspace.Name = name
	if err := s.workspaceRepo.Update(workspace); err != nil {
		return nil, apperrors.Store("failed to update workspace", err)
	}

	return workspace, nil
}

// Delete removes a workspace and everything it owns. Only the owner may
// trigger the cascade.
func (s *WorkspaceService) Delete(workspaceID, requesterID uint64) error {
	if _, err := s.workspaceRepo.FindByID(workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkspaceNotFound
		}
		return apperrors.Store("failed to find workspace", err)
	}

	member, err := s.workspaceRepo.FindMember(workspaceID, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotWorkspaceMember
		}
		return apperrors.Store("failed to verify membership", err)
	}
	if member.Role != models.RoleOwner {
		return ErrNotWorkspaceOwner
	}

	if err := s.workspaceRepo.Delete(workspaceID); err != nil {
		return apperrors.Store("failed to delete workspace", err)
	}

	return nil
}

// AddMember adds a user to a workspace. Any member may invite; adding an
// existing member fails with a conflict rather than creating a duplicate.
func (s *WorkspaceService) AddMember(workspaceID, requesterID, targetUserID uint64) (*models.WorkspaceMember, error) {
	if _, err := s.workspaceRepo.FindByID(workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, apperrors.Store("failed to find workspace", err)
	}

	if err := s.ensureMember(workspaceID, requesterID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, apperrors.Store("failed to find user", err)
	}

	if _, err := s.workspaceRepo.FindMember(workspaceID, targetUserID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Store("failed to verify membership", err)
	}

	member := &models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      targetUserID,
		Role:        models.RoleMember,
		JoinedAt:    time.Now(),
	}

	if err := s.workspaceRepo.AddMember(member); err != nil {
		return nil, apperrors.Store("failed to add member", err)
	}

	member.User = *user

	return member, nil
}

// ListMembers returns all members of a workspace with their user profiles.
func (s *WorkspaceService) ListMembers(workspaceID, requesterID uint64) ([]models.WorkspaceMember, error) {
	if _, err := s.workspaceRepo.FindByID(workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, apperrors.Store("failed to find workspace", err)
	}

	if err := s.ensureMember(workspaceID, requesterID); err != nil {
		return nil, err
	}

	members, err := s.workspaceRepo.ListMembers(workspaceID)
	if err != nil {
		return nil, apperrors.Store("failed to list members", err)
	}

	return members, nil
}

// ensureMember verifies that a user belongs to a workspace.
func (s *WorkspaceService) ensureMember(workspaceID, userID uint64) error {
	_, err := s.workspaceRepo.FindMember(workspaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotWorkspaceMember
		}
		return apperrors.Store("failed to verify membership", err)
	}
	return nil
}
