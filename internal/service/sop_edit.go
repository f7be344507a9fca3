package service

import (
	"context"
	"fmt"
	"strings"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/repository"
)

type sopEditService struct {
	reqRepo     repository.JoinRequestRepository
	projectRepo repository.ProjectRepository
}

func NewSopEditService(
	reqRepo repository.JoinRequestRepository,
	projectRepo repository.ProjectRepository,
) SopEditService {
	return &sopEditService{
		reqRepo:     reqRepo,
		projectRepo: projectRepo,
	}
}

// EditSop amends a pending application. The version+PENDING condition is
// evaluated inside the write itself, so an edit racing a decision or a
// second tab loses cleanly instead of clobbering.
func (s *sopEditService) EditSop(ctx context.Context, requestID, applicantID int32, sop string, expectedVersion int32) (*domain.JoinRequest, error) {
	if strings.TrimSpace(sop) == "" {
		return nil, fmt.Errorf("%w: sop is required", domain.ErrValidation)
	}

	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ApplicantID != applicantID {
		return nil, fmt.Errorf("%w: not your application", domain.ErrForbidden)
	}
	if req.Decided() {
		return nil, fmt.Errorf("%w: request already decided", domain.ErrConflict)
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.ProjectStatusOpen {
		return nil, fmt.Errorf("%w: project is closed", domain.ErrConflict)
	}

	return s.reqRepo.UpdateSop(ctx, requestID, sop, expectedVersion)
}
