package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/logger"
	"campuscollab-backend/internal/repository"
)

// uniqueViolation is the PostgreSQL error code for a unique index violation.
const uniqueViolation = "23505"

type joinRequestRepository struct {
	db *sql.DB
}

func NewJoinRequestRepository(db *sql.DB) repository.JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

const joinRequestColumns = `id, project_id, applicant_id, sop,
	       snapshot_name, snapshot_email, snapshot_college, snapshot_branch, snapshot_year,
	       snapshot_skills, snapshot_resume_url,
	       status, decision_at, COALESCE(decision_message, ''), version, created_on, updated_on`

func scanJoinRequest(row interface{ Scan(...any) error }, r *domain.JoinRequest) error {
	return row.Scan(
		&r.ID, &r.ProjectID, &r.ApplicantID, &r.Sop,
		&r.Snapshot.Name, &r.Snapshot.Email, &r.Snapshot.College, &r.Snapshot.Branch, &r.Snapshot.Year,
		pq.Array(&r.Snapshot.Skills), &r.Snapshot.ResumeURL,
		&r.Status, &r.DecisionAt, &r.DecisionMessage, &r.Version, &r.CreatedAt, &r.UpdatedAt,
	)
}

// Create inserts a PENDING request. The unique (project_id, applicant_id)
// index is the authoritative duplicate guard: a violation here is reported
// the same as a failed pre-check, even when it races a concurrent insert.
func (r *joinRequestRepository) Create(ctx context.Context, req *domain.JoinRequest) error {
	logger.EnterMethod("joinRequestRepository.Create", "projectID", req.ProjectID, "applicantID", req.ApplicantID)

	query := `
		INSERT INTO join_requests (
			project_id, applicant_id, sop,
			snapshot_name, snapshot_email, snapshot_college, snapshot_branch, snapshot_year,
			snapshot_skills, snapshot_resume_url,
			status, version, created_on, updated_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, $12, $12)
		RETURNING id, created_on, updated_on
	`
	err := r.db.QueryRowContext(ctx, query,
		req.ProjectID, req.ApplicantID, req.Sop,
		req.Snapshot.Name, req.Snapshot.Email, req.Snapshot.College, req.Snapshot.Branch, req.Snapshot.Year,
		pq.Array(req.Snapshot.Skills), req.Snapshot.ResumeURL,
		domain.JoinRequestStatusPending, time.Now(),
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		logger.ExitMethodWithError("joinRequestRepository.Create", err, "applicantID", req.ApplicantID)
		return fmt.Errorf("%w: one application per project", domain.ErrDuplicate)
	}
	if err != nil {
		logger.ExitMethodWithError("joinRequestRepository.Create", err, "applicantID", req.ApplicantID)
		return err
	}

	req.Status = domain.JoinRequestStatusPending
	req.Version = 1

	logger.ExitMethod("joinRequestRepository.Create", "requestID", req.ID)
	return nil
}

func (r *joinRequestRepository) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	req := &domain.JoinRequest{}
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE id = $1`
	err := scanJoinRequest(r.db.QueryRowContext(ctx, query, id), req)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: request %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *joinRequestRepository) ListByApplicant(ctx context.Context, applicantID int32) ([]domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + `
	          FROM join_requests WHERE applicant_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, applicantID)
}

func (r *joinRequestRepository) ListByProject(ctx context.Context, projectID int32) ([]domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + `
	          FROM join_requests WHERE project_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, projectID)
}

func (r *joinRequestRepository) list(ctx context.Context, query string, arg any) ([]domain.JoinRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.JoinRequest
	for rows.Next() {
		var req domain.JoinRequest
		if err := scanJoinRequest(rows, &req); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// Accept claims a team slot and finalizes the request in one transaction.
//
// The project update is the serialization point: its WHERE clause re-checks
// status, deletion, and capacity at write time, so of two concurrent accepts
// on the last slot exactly one sees a row affected. The losing side gets
// ErrCapacity with the request still PENDING. If the request itself was
// decided in between, the claimed slot is rolled back with the transaction.
func (r *joinRequestRepository) Accept(ctx context.Context, req *domain.JoinRequest) error {
	logger.EnterMethod("joinRequestRepository.Accept", "requestID", req.ID, "projectID", req.ProjectID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	claim := `
		UPDATE projects SET
			member_count = member_count + 1,
			status = CASE WHEN member_count + 1 >= team_size THEN 'CLOSED' ELSE status END,
			version = version + 1,
			updated_on = $2
		WHERE id = $1 AND status = 'OPEN' AND is_deleted = false AND member_count < team_size
	`
	now := time.Now()
	result, err := tx.ExecContext(ctx, claim, req.ProjectID, now)
	if err != nil {
		logger.ExitMethodWithError("joinRequestRepository.Accept", err, "requestID", req.ID)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		logger.DatabaseResult("joinRequestRepository.Accept.claim", 0, nil, "projectID", req.ProjectID)
		return fmt.Errorf("%w: project is full, closed, or gone; refresh and retry", domain.ErrCapacity)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO project_members (project_id, user_id, joined_on) VALUES ($1, $2, $3)`,
		req.ProjectID, req.ApplicantID, now,
	)
	if err != nil {
		logger.ExitMethodWithError("joinRequestRepository.Accept", err, "requestID", req.ID)
		return err
	}

	finalize := `
		UPDATE join_requests SET
			status = $2, decision_at = $3, version = version + 1, updated_on = $3
		WHERE id = $1 AND status = 'PENDING'
	`
	result, err = tx.ExecContext(ctx, finalize, req.ID, domain.JoinRequestStatusAccepted, now)
	if err != nil {
		logger.ExitMethodWithError("joinRequestRepository.Accept", err, "requestID", req.ID)
		return err
	}
	rows, err = result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Decided concurrently. Rolling back undoes the slot claim too.
		return fmt.Errorf("%w: request already decided", domain.ErrConflict)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	req.Status = domain.JoinRequestStatusAccepted
	req.DecisionAt = &now
	req.Version++

	logger.ExitMethod("joinRequestRepository.Accept", "requestID", req.ID)
	return nil
}

// Reject finalizes the request without touching the project. The PENDING
// guard makes a racing second decision fail instead of overwriting.
func (r *joinRequestRepository) Reject(ctx context.Context, req *domain.JoinRequest) error {
	logger.EnterMethod("joinRequestRepository.Reject", "requestID", req.ID)

	now := time.Now()
	query := `
		UPDATE join_requests SET
			status = $2, decision_at = $3, decision_message = $4, version = version + 1, updated_on = $3
		WHERE id = $1 AND status = 'PENDING'
	`
	result, err := r.db.ExecContext(ctx, query, req.ID, domain.JoinRequestStatusRejected, now, req.DecisionMessage)
	if err != nil {
		logger.ExitMethodWithError("joinRequestRepository.Reject", err, "requestID", req.ID)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: request already decided", domain.ErrConflict)
	}

	req.Status = domain.JoinRequestStatusRejected
	req.DecisionAt = &now
	req.Version++

	logger.ExitMethod("joinRequestRepository.Reject", "requestID", req.ID)
	return nil
}

// UpdateSop applies the edit only if both the version and the PENDING status
// still hold at write time. A stale tab or a concurrent decision loses the
// race cleanly.
func (r *joinRequestRepository) UpdateSop(ctx context.Context, requestID int32, sop string, expectedVersion int32) (*domain.JoinRequest, error) {
	logger.EnterMethod("joinRequestRepository.UpdateSop", "requestID", requestID, "expectedVersion", expectedVersion)

	query := `
		UPDATE join_requests SET sop = $2, version = version + 1, updated_on = $3
		WHERE id = $1 AND version = $4 AND status = 'PENDING'
		RETURNING ` + joinRequestColumns

	req := &domain.JoinRequest{}
	err := scanJoinRequest(r.db.QueryRowContext(ctx, query, requestID, sop, time.Now(), expectedVersion), req)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: request changed since version %d, refresh and retry", domain.ErrConflict, expectedVersion)
	}
	if err != nil {
		logger.ExitMethodWithError("joinRequestRepository.UpdateSop", err, "requestID", requestID)
		return nil, err
	}

	logger.ExitMethod("joinRequestRepository.UpdateSop", "requestID", requestID, "version", req.Version)
	return req, nil
}
