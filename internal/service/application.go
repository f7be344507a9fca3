package service

import (
	"context"
	"fmt"
	"strings"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/repository"
)

type applicationService struct {
	reqRepo     repository.JoinRequestRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	emitter     NotificationEmitter
}

func NewApplicationService(
	reqRepo repository.JoinRequestRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	emitter NotificationEmitter,
) ApplicationService {
	return &applicationService{
		reqRepo:     reqRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		emitter:     emitter,
	}
}

// SubmitApplication creates a PENDING join request carrying a frozen copy of
// the applicant's profile. The duplicate pre-check is best effort only; the
// unique index behind reqRepo.Create is what actually holds under races.
func (s *applicationService) SubmitApplication(ctx context.Context, projectID, applicantID int32, sop string) (*domain.JoinRequest, error) {
	if strings.TrimSpace(sop) == "" {
		return nil, fmt.Errorf("%w: sop is required", domain.ErrValidation)
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status == domain.ProjectStatusClosed {
		return nil, fmt.Errorf("%w: project is not accepting applications", domain.ErrClosed)
	}
	if project.OwnerID == applicantID {
		return nil, fmt.Errorf("%w: you cannot apply to your own project", domain.ErrForbidden)
	}
	if project.IsFull() {
		return nil, fmt.Errorf("%w: no open slots", domain.ErrCapacity)
	}

	applicant, err := s.userRepo.GetByID(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	req := &domain.JoinRequest{
		ProjectID:   projectID,
		ApplicantID: applicantID,
		Sop:         sop,
		Snapshot:    applicant.Snapshot(),
		Status:      domain.JoinRequestStatusPending,
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, &domain.Notification{
		RecipientID: project.OwnerID,
		Type:        domain.NotificationTypeNewApplication,
		Message:     fmt.Sprintf("%s applied to join %s", applicant.Name, project.Title),
		EntityType:  domain.EntityTypeRequest,
		EntityID:    req.ID,
	})

	return req, nil
}

func (s *applicationService) ListMyRequests(ctx context.Context, applicantID int32) ([]domain.JoinRequest, error) {
	return s.reqRepo.ListByApplicant(ctx, applicantID)
}

func (s *applicationService) ListProjectRequests(ctx context.Context, ownerID, projectID int32) ([]domain.JoinRequest, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: not the project owner", domain.ErrForbidden)
	}
	return s.reqRepo.ListByProject(ctx, projectID)
}

// GetRequest is visible to the applicant and to the project owner.
func (s *applicationService) GetRequest(ctx context.Context, callerID, requestID int32) (*domain.JoinRequest, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ApplicantID == callerID {
		return req, nil
	}
	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != callerID {
		return nil, fmt.Errorf("%w: not the applicant or project owner", domain.ErrForbidden)
	}
	return req, nil
}
