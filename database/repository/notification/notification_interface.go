package notificationRepo

import (
	"context"

	"servicelink/models"
)

// NotificationRepository stores in-app notifications per user.
type NotificationRepository interface {
	Create(ctx context.Context, n models.Notification) error
	// ListByUser returns a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	// MarkRead flags one of the user's notifications as read.
	MarkRead(ctx context.Context, userID, id string) error
}
