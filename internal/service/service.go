package service

import (
	"context"

	"campuscollab-backend/internal/domain"
)

type ProjectService interface {
	CreateProject(ctx context.Context, ownerID int32, project *domain.Project) error
	GetProject(ctx context.Context, id int32) (*domain.Project, []int32, error)
	ListOpenProjects(ctx context.Context) ([]domain.Project, error)
	UpdateProject(ctx context.Context, projectID, ownerID int32, patch domain.ProjectPatch, expectedVersion int32) (*domain.Project, error)
	SetProjectStatus(ctx context.Context, projectID, ownerID int32, status domain.ProjectStatus) error
	DeleteProject(ctx context.Context, projectID, ownerID int32) error
}

type ApplicationService interface {
	SubmitApplication(ctx context.Context, projectID, applicantID int32, sop string) (*domain.JoinRequest, error)
	ListMyRequests(ctx context.Context, applicantID int32) ([]domain.JoinRequest, error)
	ListProjectRequests(ctx context.Context, ownerID, projectID int32) ([]domain.JoinRequest, error)
	GetRequest(ctx context.Context, callerID, requestID int32) (*domain.JoinRequest, error)
}

type DecisionService interface {
	Decide(ctx context.Context, requestID, deciderID int32, decision domain.JoinRequestStatus, message string) (*domain.JoinRequest, error)
}

type SopEditService interface {
	EditSop(ctx context.Context, requestID, applicantID int32, sop string, expectedVersion int32) (*domain.JoinRequest, error)
}

type NotificationService interface {
	ListNotifications(ctx context.Context, userID int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
	MarkAllAsRead(ctx context.Context, userID int32) error
}

// NotificationEmitter is the boundary to the delivery subsystem. Emit is
// fire-and-forget: it runs after the caller's own writes have committed and
// its failures never propagate back.
type NotificationEmitter interface {
	Emit(ctx context.Context, note *domain.Notification)
}

type EmailService interface {
	SendNotification(ctx context.Context, toEmail, toName, subject, body string) error
}
