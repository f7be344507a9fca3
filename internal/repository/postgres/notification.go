package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	query := `
		INSERT INTO notifications (recipient_id, type, message, entity_type, entity_id, is_read, created_on)
		VALUES ($1, $2, $3, $4, $5, false, $6) RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		note.RecipientID, note.Type, note.Message, note.EntityType, note.EntityID, time.Now(),
	).Scan(&note.ID)
}

// List returns the newest notifications plus the unread count.
func (r *notificationRepository) List(ctx context.Context, recipientID int32, limit int32) ([]domain.Notification, int32, error) {
	query := `
		SELECT id, recipient_id, type, message, COALESCE(entity_type, ''), COALESCE(entity_id, 0), is_read, created_on
		FROM notifications WHERE recipient_id = $1
		ORDER BY created_on DESC LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, recipientID, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Message, &n.EntityType, &n.EntityID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var unread int32
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`, recipientID,
	).Scan(&unread)
	if err != nil {
		return nil, 0, err
	}
	return notes, unread, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, recipientID int32) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: notification %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE recipient_id = $1 AND is_read = false`, recipientID)
	return err
}
