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

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, owner_id, title, description, details, required_skills, team_size,
	       member_count, status, is_deleted, version, created_on, updated_on`

func scanProject(row interface{ Scan(...any) error }, p *domain.Project) error {
	return row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Details, pq.Array(&p.RequiredSkills),
		&p.TeamSize, &p.MemberCount, &p.Status, &p.IsDeleted, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
}

// Create inserts the project and the owner membership row in one transaction
// so a project can never exist without its owner as first member.
func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	logger.EnterMethod("projectRepository.Create", "ownerID", project.OwnerID, "title", project.Title)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `
		INSERT INTO projects (
			owner_id, title, description, details, required_skills, team_size,
			member_count, status, is_deleted, version, created_on, updated_on
		) VALUES ($1, $2, $3, $4, $5, $6, 1, $7, false, 1, $8, $8)
		RETURNING id, created_on, updated_on
	`
	err = tx.QueryRowContext(ctx, query,
		project.OwnerID, project.Title, project.Description, project.Details,
		pq.Array(project.RequiredSkills), project.TeamSize, domain.ProjectStatusOpen, now,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		logger.ExitMethodWithError("projectRepository.Create", err, "ownerID", project.OwnerID)
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO project_members (project_id, user_id, joined_on) VALUES ($1, $2, $3)`,
		project.ID, project.OwnerID, now,
	)
	if err != nil {
		logger.ExitMethodWithError("projectRepository.Create", err, "projectID", project.ID)
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	project.MemberCount = 1
	project.Status = domain.ProjectStatusOpen
	project.Version = 1

	logger.ExitMethod("projectRepository.Create", "projectID", project.ID)
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	p := &domain.Project{}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND is_deleted = false`
	err := scanProject(r.db.QueryRowContext(ctx, query, id), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: project %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *projectRepository) ListOpen(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + `
	          FROM projects
	          WHERE status = $1 AND is_deleted = false
	          ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, domain.ProjectStatusOpen)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) ListMembers(ctx context.Context, projectID int32) ([]int32, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM project_members WHERE project_id = $1 ORDER BY joined_on`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		members = append(members, id)
	}
	return members, rows.Err()
}

// UpdatePatch writes the already-patched project back, conditioned on the
// version the caller read. Status is recomputed in the same statement so a
// shrunk team size closes the project atomically with the edit.
func (r *projectRepository) UpdatePatch(ctx context.Context, project *domain.Project, expectedVersion int32) error {
	logger.EnterMethod("projectRepository.UpdatePatch", "projectID", project.ID, "expectedVersion", expectedVersion)

	query := `
		UPDATE projects SET
			title = $1,
			description = $2,
			details = $3,
			required_skills = $4,
			team_size = $5,
			status = CASE WHEN member_count >= $5 THEN 'CLOSED' ELSE 'OPEN' END,
			version = version + 1,
			updated_on = $6
		WHERE id = $7 AND version = $8 AND is_deleted = false AND member_count <= $5
	`
	result, err := r.db.ExecContext(ctx, query,
		project.Title, project.Description, project.Details, pq.Array(project.RequiredSkills),
		project.TeamSize, time.Now(), project.ID, expectedVersion,
	)
	if err != nil {
		logger.ExitMethodWithError("projectRepository.UpdatePatch", err, "projectID", project.ID)
		return err
	}

	rows, err := result.RowsAffected()
	logger.DatabaseResult("projectRepository.UpdatePatch", rows, err, "projectID", project.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: project was modified by someone else, refresh and retry", domain.ErrConflict)
	}

	project.Version = expectedVersion + 1
	if project.IsFull() {
		project.Status = domain.ProjectStatusClosed
	} else {
		project.Status = domain.ProjectStatusOpen
	}
	return nil
}

// SetStatus toggles recruitment. The reopen guard lives in the WHERE clause:
// a full project cannot go back to OPEN no matter what the caller read.
func (r *projectRepository) SetStatus(ctx context.Context, projectID int32, status domain.ProjectStatus) error {
	query := `
		UPDATE projects SET status = $2, version = version + 1, updated_on = $3
		WHERE id = $1 AND is_deleted = false
		  AND ($2 <> 'OPEN' OR member_count < team_size)
	`
	result, err := r.db.ExecContext(ctx, query, projectID, status, time.Now())
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: cannot reopen a full project", domain.ErrConflict)
	}
	return nil
}

func (r *projectRepository) SoftDelete(ctx context.Context, projectID int32) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET is_deleted = true, version = version + 1, updated_on = $2
		 WHERE id = $1 AND is_deleted = false`,
		projectID, time.Now(),
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: project %d", domain.ErrNotFound, projectID)
	}
	return nil
}
