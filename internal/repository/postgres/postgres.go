package postgres

import (
	"database/sql"

	"campuscollab-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProjectRepository
	repository.JoinRequestRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ProjectRepository:      NewProjectRepository(db),
		JoinRequestRepository:  NewJoinRequestRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
