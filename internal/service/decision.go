package service

import (
	"context"
	"fmt"
	"strings"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/repository"
)

type decisionService struct {
	reqRepo     repository.JoinRequestRepository
	projectRepo repository.ProjectRepository
	emitter     NotificationEmitter
}

func NewDecisionService(
	reqRepo repository.JoinRequestRepository,
	projectRepo repository.ProjectRepository,
	emitter NotificationEmitter,
) DecisionService {
	return &decisionService{
		reqRepo:     reqRepo,
		projectRepo: projectRepo,
		emitter:     emitter,
	}
}

// Decide moves a PENDING request to ACCEPTED or REJECTED on behalf of the
// project owner.
//
// The checks here are advisory; the store re-validates everything that can
// race at write time. An accept that loses the last slot comes back as
// ErrCapacity with the request still PENDING, so the owner can reject it or
// the applicant can be told the team filled up.
func (s *decisionService) Decide(ctx context.Context, requestID, deciderID int32, decision domain.JoinRequestStatus, message string) (*domain.JoinRequest, error) {
	if decision != domain.JoinRequestStatusAccepted && decision != domain.JoinRequestStatusRejected {
		return nil, fmt.Errorf("%w: decision must be ACCEPTED or REJECTED", domain.ErrValidation)
	}

	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != deciderID {
		return nil, fmt.Errorf("%w: not the project owner", domain.ErrForbidden)
	}
	if req.Decided() {
		return nil, fmt.Errorf("%w: request already decided", domain.ErrConflict)
	}

	switch decision {
	case domain.JoinRequestStatusRejected:
		if strings.TrimSpace(message) == "" {
			return nil, fmt.Errorf("%w: a rejection needs a message", domain.ErrValidation)
		}
		req.DecisionMessage = message
		if err := s.reqRepo.Reject(ctx, req); err != nil {
			return nil, err
		}

	case domain.JoinRequestStatusAccepted:
		if err := s.reqRepo.Accept(ctx, req); err != nil {
			return nil, err
		}
	}

	s.emitter.Emit(ctx, &domain.Notification{
		RecipientID: req.ApplicantID,
		Type:        domain.NotificationTypeRequestDecision,
		Message:     decisionMessage(project.Title, decision, message),
		EntityType:  domain.EntityTypeRequest,
		EntityID:    req.ID,
	})

	return req, nil
}

func decisionMessage(projectTitle string, decision domain.JoinRequestStatus, message string) string {
	if decision == domain.JoinRequestStatusAccepted {
		return fmt.Sprintf("Your request to join %s was accepted", projectTitle)
	}
	return fmt.Sprintf("Your request to join %s was rejected: %s", projectTitle, message)
}
