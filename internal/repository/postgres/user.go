package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, COALESCE(contact, ''), COALESCE(college, ''),
	       COALESCE(branch, ''), COALESCE(year, ''), skills, COALESCE(resume_url, ''),
	       created_on, updated_on`

func scanUser(row interface{ Scan(...any) error }, u *domain.User) error {
	return row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Contact, &u.College,
		&u.Branch, &u.Year, pq.Array(&u.Skills), &u.ResumeURL,
		&u.CreatedAt, &u.UpdatedAt,
	)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := scanUser(r.db.QueryRowContext(ctx, query, id), u)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	err := scanUser(r.db.QueryRowContext(ctx, query, email), u)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			name = $1, contact = $2, college = $3, branch = $4, year = $5,
			skills = $6, resume_url = $7, updated_on = $8
		WHERE id = $9
	`
	_, err := r.db.ExecContext(ctx, query,
		user.Name, user.Contact, user.College, user.Branch, user.Year,
		pq.Array(user.Skills), user.ResumeURL, time.Now(), user.ID,
	)
	return err
}
