package repository

import (
	"context"

	"campuscollab-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ProjectRepository interface {
	// Create inserts the project and seeds the owner as its first member in
	// one transaction.
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int32) (*domain.Project, error)
	ListOpen(ctx context.Context) ([]domain.Project, error)
	ListMembers(ctx context.Context, projectID int32) ([]int32, error)

	// UpdatePatch applies the patch only if the stored version still equals
	// expectedVersion, recomputing OPEN/CLOSED against the new team size.
	// Returns domain.ErrConflict when the version is stale.
	UpdatePatch(ctx context.Context, project *domain.Project, expectedVersion int32) error

	// SetStatus is the owner's manual OPEN/CLOSED toggle. Reopening a full
	// project fails with domain.ErrConflict; the write itself re-checks
	// member_count < team_size.
	SetStatus(ctx context.Context, projectID int32, status domain.ProjectStatus) error

	SoftDelete(ctx context.Context, projectID int32) error
}

type JoinRequestRepository interface {
	// Create relies on the unique (project_id, applicant_id) index and maps
	// a violation to domain.ErrDuplicate.
	Create(ctx context.Context, req *domain.JoinRequest) error
	GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error)
	ListByApplicant(ctx context.Context, applicantID int32) ([]domain.JoinRequest, error)
	ListByProject(ctx context.Context, projectID int32) ([]domain.JoinRequest, error)

	// Accept performs the cross-entity acceptance as one transaction: a
	// conditional capacity claim on the project (fails with
	// domain.ErrCapacity if the project is full, closed, or deleted at
	// write time), the membership insert, and the PENDING-guarded request
	// transition (fails with domain.ErrConflict, rolling back the claim).
	Accept(ctx context.Context, req *domain.JoinRequest) error

	// Reject transitions the request to REJECTED only while it is still
	// PENDING; a lost race surfaces as domain.ErrConflict.
	Reject(ctx context.Context, req *domain.JoinRequest) error

	// UpdateSop rewrites the sop only if version and PENDING status both
	// hold at write time, incrementing the version. Stale writes fail with
	// domain.ErrConflict and leave the row untouched.
	UpdateSop(ctx context.Context, requestID int32, sop string, expectedVersion int32) (*domain.JoinRequest, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, recipientID int32, limit int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, recipientID int32) error
	MarkAllAsRead(ctx context.Context, recipientID int32) error
}
