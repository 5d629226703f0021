package notification

import (
	"context"
	"fmt"
	"time"

	notificationRepo "servicelink/database/repository/notification"
	"servicelink/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService writes and reads the in-app inbox.
type NotificationService interface {
	Notify(ctx context.Context, userID string, typ models.NotificationType, title, message, actionURL string) error
	List(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	repo   notificationRepo.NotificationRepository
	logger *zap.Logger
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository, logger *zap.Logger) (*DefaultNotificationService, error) {
	if repo == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{repo: repo, logger: logger}, nil
}

func (s *DefaultNotificationService) Notify(ctx context.Context, userID string, typ models.NotificationType, title, message, actionURL string) error {
	if userID == "" {
		return fmt.Errorf("Notify: empty user id")
	}
	n := models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		ActionURL: actionURL,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("Notify: failed to store notification for %s: %w", userID, err)
	}
	s.logger.Debug("notification stored", zap.String("userID", userID), zap.String("type", string(typ)))
	return nil
}

func (s *DefaultNotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}
