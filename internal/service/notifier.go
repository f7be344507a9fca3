package service

import (
	"context"

	"campuscollab-backend/internal/domain"
	"campuscollab-backend/internal/logger"
	"campuscollab-backend/internal/repository"
)

// notifier persists a notification row and mirrors it to email. It runs
// after the caller's transaction has committed; nothing here can undo a
// decision, so failures are logged and swallowed.
type notifier struct {
	noteRepo repository.NotificationRepository
	userRepo repository.UserRepository
	emailSvc EmailService
}

func NewNotifier(
	noteRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) NotificationEmitter {
	return &notifier{
		noteRepo: noteRepo,
		userRepo: userRepo,
		emailSvc: emailSvc,
	}
}

func (n *notifier) Emit(ctx context.Context, note *domain.Notification) {
	if err := n.noteRepo.Create(ctx, note); err != nil {
		logger.ErrorContext(ctx, "failed to persist notification",
			"recipient_id", note.RecipientID, "type", note.Type, "error", err)
	}

	if n.emailSvc == nil {
		return
	}
	recipient, err := n.userRepo.GetByID(ctx, note.RecipientID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load notification recipient",
			"recipient_id", note.RecipientID, "error", err)
		return
	}

	var subject string
	switch note.Type {
	case domain.NotificationTypeNewApplication:
		subject = "New application to your project"
	case domain.NotificationTypeRequestDecision:
		subject = "Decision on your join request"
	default:
		subject = "CampusCollab update"
	}
	if err := n.emailSvc.SendNotification(ctx, recipient.Email, recipient.Name, subject, note.Message); err != nil {
		logger.ErrorContext(ctx, "failed to send notification email",
			"recipient_id", note.RecipientID, "type", note.Type, "error", err)
	}
}
