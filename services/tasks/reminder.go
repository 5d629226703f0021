package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"servicelink/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderTaskID identifies the single reminder a recipient gets for a booking.
func ReminderTaskID(bookingID, userID string) string {
	return fmt.Sprintf("reminder:%s:%s", bookingID, userID)
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		// One reminder per booking and recipient even if the booking is confirmed twice.
		asynq.TaskID(ReminderTaskID(payload.BookingID, payload.UserID)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ReminderScheduler queues a reminder for delivery at fireAt and withdraws it again.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
	// CancelReminder drops a queued reminder. A reminder that is not queued is not an error.
	CancelReminder(ctx context.Context, bookingID, userID string) error
}

// AsynqScheduler enqueues reminder tasks on the asynq queue. Inspector deletes them.
type AsynqScheduler struct {
	Client    *asynq.Client
	Inspector *asynq.Inspector
	// Queue defaults to "default".
	Queue string
}

func (s AsynqScheduler) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

func (s AsynqScheduler) CancelReminder(_ context.Context, bookingID, userID string) error {
	queue := s.Queue
	if queue == "" {
		queue = "default"
	}
	err := s.Inspector.DeleteTask(queue, ReminderTaskID(bookingID, userID))
	if err == nil || errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return fmt.Errorf("failed to delete reminder: %w", err)
}
