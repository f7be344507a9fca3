package service

import (
	"context"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/repository"
)

// listLimit caps a notification page, same safety limit the feed UI uses.
const listLimit = 50

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID int32) ([]domain.Notification, int32, error) {
	return s.noteRepo.List(ctx, userID, listLimit)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID int32) error {
	return s.noteRepo.MarkAllAsRead(ctx, userID)
}
