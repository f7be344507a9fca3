package service_test

import (
	"context"
	"testing"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func openProject(owner int32) *domain.Project {
	return &domain.Project{
		ID:          1,
		OwnerID:     owner,
		Title:       "Study Buddy",
		Description: "An app",
		TeamSize:    2,
		MemberCount: 1,
		Status:      domain.ProjectStatusOpen,
		Version:     1,
	}
}

func TestApplicationService_SubmitApplication(t *testing.T) {
	ctx := context.Background()
	ownerID := int32(10)
	applicantID := int32(20)

	applicant := &domain.User{
		ID:      applicantID,
		Name:    "Asha",
		Email:   "asha@college.edu",
		College: "IIT",
		Branch:  "CSE",
		Year:    "3",
		Skills:  []string{"go", "react"},
	}

	t.Run("Success", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		userRepo := new(MockUserRepo)
		emitter := new(MockEmitter)
		svc := service.NewApplicationService(reqRepo, projectRepo, userRepo, emitter)

		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(ownerID), nil)
		userRepo.On("GetByID", ctx, applicantID).Return(applicant, nil)
		reqRepo.On("Create", ctx, mock.AnythingOfType("*domain.JoinRequest")).Return(nil)
		emitter.On("Emit", ctx, mock.AnythingOfType("*domain.Notification")).Return()

		req, err := svc.SubmitApplication(ctx, 1, applicantID, "interested")
		assert.NoError(t, err)
		assert.Equal(t, domain.JoinRequestStatusPending, req.Status)
		assert.Equal(t, "interested", req.Sop)
		assert.Equal(t, "Asha", req.Snapshot.Name)
		assert.Equal(t, []string{"go", "react"}, req.Snapshot.Skills)
		reqRepo.AssertExpectations(t)
		emitter.AssertExpectations(t)

		// The notification goes to the project owner.
		note := emitter.Calls[0].Arguments.Get(1).(*domain.Notification)
		assert.Equal(t, ownerID, note.RecipientID)
		assert.Equal(t, domain.NotificationTypeNewApplication, note.Type)
	})

	t.Run("Snapshot is a value copy", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		userRepo := new(MockUserRepo)
		emitter := new(MockEmitter)
		svc := service.NewApplicationService(reqRepo, projectRepo, userRepo, emitter)

		user := &domain.User{ID: applicantID, Name: "Asha", Skills: []string{"go"}}
		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(ownerID), nil)
		userRepo.On("GetByID", ctx, applicantID).Return(user, nil)
		reqRepo.On("Create", ctx, mock.Anything).Return(nil)
		emitter.On("Emit", ctx, mock.Anything).Return()

		req, err := svc.SubmitApplication(ctx, 1, applicantID, "sop")
		assert.NoError(t, err)

		user.Name = "Renamed"
		user.Skills[0] = "rust"
		assert.Equal(t, "Asha", req.Snapshot.Name)
		assert.Equal(t, []string{"go"}, req.Snapshot.Skills)
	})

	t.Run("Missing SOP", func(t *testing.T) {
		svc := service.NewApplicationService(new(MockJoinRequestRepo), new(MockProjectRepo), new(MockUserRepo), new(MockEmitter))

		req, err := svc.SubmitApplication(ctx, 1, applicantID, "   ")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, req)
	})

	t.Run("Project closed", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		svc := service.NewApplicationService(reqRepo, projectRepo, new(MockUserRepo), new(MockEmitter))

		closed := openProject(ownerID)
		closed.Status = domain.ProjectStatusClosed
		projectRepo.On("GetByID", ctx, int32(1)).Return(closed, nil)

		req, err := svc.SubmitApplication(ctx, 1, applicantID, "sop")
		assert.ErrorIs(t, err, domain.ErrClosed)
		assert.Nil(t, req)
		reqRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Owner applies to own project", func(t *testing.T) {
		projectRepo := new(MockProjectRepo)
		svc := service.NewApplicationService(new(MockJoinRequestRepo), projectRepo, new(MockUserRepo), new(MockEmitter))

		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(ownerID), nil)

		req, err := svc.SubmitApplication(ctx, 1, ownerID, "sop")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Nil(t, req)
	})

	t.Run("Project full", func(t *testing.T) {
		projectRepo := new(MockProjectRepo)
		svc := service.NewApplicationService(new(MockJoinRequestRepo), projectRepo, new(MockUserRepo), new(MockEmitter))

		full := openProject(ownerID)
		full.MemberCount = full.TeamSize
		projectRepo.On("GetByID", ctx, int32(1)).Return(full, nil)

		req, err := svc.SubmitApplication(ctx, 1, applicantID, "sop")
		assert.ErrorIs(t, err, domain.ErrCapacity)
		assert.Nil(t, req)
	})

	t.Run("Duplicate application surfaced from insert", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		userRepo := new(MockUserRepo)
		emitter := new(MockEmitter)
		svc := service.NewApplicationService(reqRepo, projectRepo, userRepo, emitter)

		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(ownerID), nil)
		userRepo.On("GetByID", ctx, applicantID).Return(applicant, nil)
		reqRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

		req, err := svc.SubmitApplication(ctx, 1, applicantID, "sop")
		assert.ErrorIs(t, err, domain.ErrDuplicate)
		assert.Nil(t, req)
		emitter.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
	})
}

func TestApplicationService_GetRequest(t *testing.T) {
	ctx := context.Background()
	stored := &domain.JoinRequest{ID: 5, ProjectID: 1, ApplicantID: 20, Status: domain.JoinRequestStatusPending}

	t.Run("Applicant can view", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		svc := service.NewApplicationService(reqRepo, new(MockProjectRepo), new(MockUserRepo), new(MockEmitter))

		reqRepo.On("GetByID", ctx, int32(5)).Return(stored, nil)

		req, err := svc.GetRequest(ctx, 20, 5)
		assert.NoError(t, err)
		assert.Equal(t, stored, req)
	})

	t.Run("Owner can view", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		svc := service.NewApplicationService(reqRepo, projectRepo, new(MockUserRepo), new(MockEmitter))

		reqRepo.On("GetByID", ctx, int32(5)).Return(stored, nil)
		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(10), nil)

		req, err := svc.GetRequest(ctx, 10, 5)
		assert.NoError(t, err)
		assert.Equal(t, stored, req)
	})

	t.Run("Stranger cannot view", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		svc := service.NewApplicationService(reqRepo, projectRepo, new(MockUserRepo), new(MockEmitter))

		reqRepo.On("GetByID", ctx, int32(5)).Return(stored, nil)
		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(10), nil)

		req, err := svc.GetRequest(ctx, 99, 5)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Nil(t, req)
	})
}

func TestApplicationService_ListProjectRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner only", func(t *testing.T) {
		projectRepo := new(MockProjectRepo)
		svc := service.NewApplicationService(new(MockJoinRequestRepo), projectRepo, new(MockUserRepo), new(MockEmitter))

		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(10), nil)

		reqs, err := svc.ListProjectRequests(ctx, 99, 1)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Nil(t, reqs)
	})

	t.Run("Success", func(t *testing.T) {
		reqRepo := new(MockJoinRequestRepo)
		projectRepo := new(MockProjectRepo)
		svc := service.NewApplicationService(reqRepo, projectRepo, new(MockUserRepo), new(MockEmitter))

		projectRepo.On("GetByID", ctx, int32(1)).Return(openProject(10), nil)
		reqRepo.On("ListByProject", ctx, int32(1)).Return([]domain.JoinRequest{{ID: 5}}, nil)

		reqs, err := svc.ListProjectRequests(ctx, 10, 1)
		assert.NoError(t, err)
		assert.Len(t, reqs, 1)
	})
}
