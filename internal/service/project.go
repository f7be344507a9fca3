package service

import (
	"context"
	"fmt"
	"strings"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/repository"
)

type projectService struct {
	projectRepo repository.ProjectRepository
}

func NewProjectService(projectRepo repository.ProjectRepository) ProjectService {
	return &projectService{projectRepo: projectRepo}
}

func (s *projectService) CreateProject(ctx context.Context, ownerID int32, project *domain.Project) error {
	if strings.TrimSpace(project.Title) == "" || strings.TrimSpace(project.Description) == "" {
		return fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}
	if project.TeamSize < 1 {
		return fmt.Errorf("%w: team size must be at least 1", domain.ErrValidation)
	}
	project.OwnerID = ownerID
	return s.projectRepo.Create(ctx, project)
}

func (s *projectService) GetProject(ctx context.Context, id int32) (*domain.Project, []int32, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.projectRepo.ListMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return project, members, nil
}

func (s *projectService) ListOpenProjects(ctx context.Context) ([]domain.Project, error) {
	return s.projectRepo.ListOpen(ctx)
}

// UpdateProject applies an owner edit under the version the owner last read.
// Shrinking the team below its current membership is refused outright; the
// store recomputes OPEN/CLOSED against the new size in the same write.
func (s *projectService) UpdateProject(ctx context.Context, projectID, ownerID int32, patch domain.ProjectPatch, expectedVersion int32) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: not the project owner", domain.ErrForbidden)
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
		}
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Details != nil {
		project.Details = *patch.Details
	}
	if patch.RequiredSkills != nil {
		project.RequiredSkills = patch.RequiredSkills
	}
	if patch.TeamSize != nil {
		if *patch.TeamSize < project.MemberCount {
			return nil, fmt.Errorf("%w: team size %d is below current membership %d",
				domain.ErrValidation, *patch.TeamSize, project.MemberCount)
		}
		project.TeamSize = *patch.TeamSize
	}

	if err := s.projectRepo.UpdatePatch(ctx, project, expectedVersion); err != nil {
		return nil, err
	}
	return project, nil
}

// SetProjectStatus is the owner's manual recruitment toggle, independent of
// capacity except that a full project stays CLOSED.
func (s *projectService) SetProjectStatus(ctx context.Context, projectID, ownerID int32, status domain.ProjectStatus) error {
	if status != domain.ProjectStatusOpen && status != domain.ProjectStatusClosed {
		return fmt.Errorf("%w: status must be OPEN or CLOSED", domain.ErrValidation)
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != ownerID {
		return fmt.Errorf("%w: not the project owner", domain.ErrForbidden)
	}
	return s.projectRepo.SetStatus(ctx, projectID, status)
}

func (s *projectService) DeleteProject(ctx context.Context, projectID, ownerID int32) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != ownerID {
		return fmt.Errorf("%w: not the project owner", domain.ErrForbidden)
	}
	return s.projectRepo.SoftDelete(ctx, projectID)
}
