package service_test

import (
	"context"
	"testing"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func pendingRequest() *domain.JoinRequest {
	return &domain.JoinRequest{
		ID:          5,
		ProjectID:   1,
		ApplicantID: 20,
		Sop:         "interested",
		Status:      domain.JoinRequestStatusPending,
		Version:     1,
	}
}

func TestDecisionService_Decide(t *testing.T) {
	ctx := context.Background()
	ownerID := int32(10)

	t.Run("Accept success", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		emitter := new(MockEmitter)
		svc := service.NewDecisionService(reqRepo, projectRepo, emitter)

		reqRepo.On("GetByID", ctx, int32(5)).Return(pendingRequest(), nil)
		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(ownerID), nil)
		reqRepo.On("Accept", ctx, mock.AnythingOfType("*domain.JoinRequest")).Return(nil)
		emitter.On("Emit", ctx, mock.AnythingOfType("*domain.Notification")).Return()

		req, err := svc.Decide(ctx, 5, ownerID, domain.JoinRequestStatusAccepted, "")
		assert.NoError(t, err)
		assert.NotNil(t, req)
		reqRepo.AssertExpectations(t)

		note := emitter.Calls[0].Arguments.Get(1).(*domain.Notification)
		assert.Equal(t, int32(20), note.RecipientID)
		assert.Equal(t, domain.NotificationTypeRequestDecision, note.Type)
	})

	t.Run("Reject requires a message", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		svc := service.NewDecisionService(reqRepo, projectRepo, new(MockEmitter))

		reqRepo.On("GetByID", ctx, int32(5)).Return(pendingRequest(), nil)
		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(ownerID), nil)

		req, err := svc.Decide(ctx, 5, ownerID, domain.JoinRequestStatusRejected, "  ")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, req)
		reqRepo.AssertNotCalled(t, "Reject", mock.Anything, mock.Anything)
	})

	t.Run("Reject success", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		emitter := new(MockEmitter)
		svc := service.NewDecisionService(reqRepo, projectRepo, emitter)

		reqRepo.On("GetByID", ctx, int32(5)).Return(pendingRequest(), nil)
		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(ownerID), nil)
		reqRepo.On("Reject", ctx, mock.MatchedBy(func(r *domain.JoinRequest) bool {
			return r.DecisionMessage == "team is going another way"
		})).Return(nil)
		emitter.On("Emit", ctx, mock.Anything).Return()

		req, err := svc.Decide(ctx, 5, ownerID, domain.JoinRequestStatusRejected, "team is going another way")
		assert.NoError(t, err)
		assert.NotNil(t, req)
		reqRepo.AssertExpectations(t)
	})

	t.Run("Not the owner", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		svc := service.NewDecisionService(reqRepo, projectRepo, new(MockEmitter))

		reqRepo.On("GetByID", ctx, int32(5)).Return(pendingRequest(), nil)
		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(ownerID), nil)

		req, err := svc.Decide(ctx, 5, int32(99), domain.JoinRequestStatusAccepted, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Nil(t, req)
	})

	t.Run("Already decided", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		svc := service.NewDecisionService(reqRepo, projectRepo, new(MockEmitter))

		decided := pendingRequest()
		decided.Status = domain.JoinRequestStatusAccepted
		reqRepo.On("GetByID", ctx, int32(5)).Return(decided, nil)
		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(ownerID), nil)

		req, err := svc.Decide(ctx, 5, ownerID, domain.JoinRequestStatusRejected, "late")
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Nil(t, req)
	})

	t.Run("Accept loses the capacity race", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		emitter := new(MockEmitter)
		svc := service.NewDecisionService(reqRepo, projectRepo, emitter)

		reqRepo.On("GetByID", ctx, int32(5)).Return(pendingRequest(), nil)
		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(ownerID), nil)
		reqRepo.On("Accept", ctx, mock.Anything).Return(domain.ErrCapacity)

		req, err := svc.Decide(ctx, 5, ownerID, domain.JoinRequestStatusAccepted, "")
		assert.ErrorIs(t, err, domain.ErrCapacity)
		assert.Nil(t, req)
		// The losing decision must not notify anyone.
		emitter.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
	})

	t.Run("Invalid decision value", func(t *testing.T) {
		svc := service.NewDecisionService(new(MockJoinRequestRepo), new(MockProjectRepo), new(MockEmitter))

		req, err := svc.Decide(ctx, 5, ownerID, domain.JoinRequestStatusPending, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, req)
	})
}
