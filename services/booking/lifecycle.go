package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	bookingRepo "servicelink/database/repository/booking"
	"servicelink/models"
	"servicelink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) List(ctx context.Context, filter bookingRepo.BookingFilter) ([]models.Booking, error) {
	return s.Bookings.List(ctx, filter)
}

func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	return s.Bookings.GetByID(ctx, id)
}

// UpdateStatus moves a booking along a legal edge of the status graph on behalf of actor.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id, status string, actor models.Role) (*models.Booking, error) {
	next, err := models.ParseBookingStatus(status)
	if err != nil {
		return nil, err
	}
	if !models.MayMoveTo(actor, next) {
		return nil, &utils.PermissionError{Msg: fmt.Sprintf("a %s cannot mark a booking %s", actor, next)}
	}
	updated, err := s.Bookings.Mutate(ctx, id, func(b *models.Booking) error {
		if !models.CanTransition(b.Status, next) {
			return &utils.TransitionError{From: string(b.Status), To: string(next)}
		}
		b.Status = next
		b.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Booking status updated", zap.String("bookingID", id), zap.String("status", string(next)))
	msg := fmt.Sprintf("Your %s booking on %s is now %s", updated.Service, updated.ScheduledDate, next)
	url := "/bookings/" + updated.ID
	s.notify(ctx, updated.ClientID, models.NotifyBooking, "Booking "+string(next), msg, url)
	s.notify(ctx, updated.WorkerID, models.NotifyBooking, "Booking "+string(next), msg, url)
	switch {
	case next == models.StatusConfirmed:
		s.scheduleReminders(ctx, *updated)
	case next.Terminal():
		s.cancelReminders(ctx, *updated)
	}
	return updated, nil
}

// cancelReminders withdraws both parties' reminders once a booking can no longer take place.
func (s *DefaultBookingService) cancelReminders(ctx context.Context, b models.Booking) {
	if s.Reminders == nil {
		return
	}
	for _, userID := range []string{b.ClientID, b.WorkerID} {
		if err := s.Reminders.CancelReminder(ctx, b.ID, userID); err != nil {
			s.Logger.Error("Failed to cancel reminder task", zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
}

// scheduleReminders queues a reminder for both parties an hour before the slot starts.
func (s *DefaultBookingService) scheduleReminders(ctx context.Context, b models.Booking) {
	if s.Reminders == nil {
		return
	}
	startsAt, err := b.StartsAt(s.loc)
	if err != nil {
		s.Logger.Warn("Cannot schedule reminder", zap.String("bookingID", b.ID), zap.Error(err))
		return
	}
	fireAt := startsAt.Add(-reminderLead)
	if !fireAt.After(s.now()) {
		return
	}
	for _, userID := range []string{b.ClientID, b.WorkerID} {
		payload := models.ReminderPayload{
			BookingID: b.ID,
			UserID:    userID,
			Title:     "Upcoming booking",
			Body:      fmt.Sprintf("%s starts at %s", b.Service, b.ScheduledTime.Start),
			FireAt:    fireAt.Format(time.RFC3339),
		}
		if err := s.Reminders.ScheduleReminder(ctx, payload, fireAt); err != nil {
			s.Logger.Error("Failed to enqueue reminder task", zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
}

// AttachReview records the client's single review of a completed booking and folds it
// into the worker's rating.
func (s *DefaultBookingService) AttachReview(ctx context.Context, bookingID, clientID string, rating int, comment string) (*models.Booking, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.NewValidationError("rating must be between 1 and 5", "rating")
	}
	var review models.Review
	updated, err := s.Bookings.Mutate(ctx, bookingID, func(b *models.Booking) error {
		if b.Status != models.StatusCompleted {
			return utils.NewStateError("only completed bookings can be reviewed (status is %s)", b.Status)
		}
		if b.ClientID != clientID {
			return utils.NewAuthError("only the booking's client can review it")
		}
		if b.Review != nil {
			return utils.NewStateError("booking %s already has a review", b.ID)
		}
		now := s.now()
		review = models.Review{
			ID:        uuid.New().String(),
			BookingID: b.ID,
			ClientID:  b.ClientID,
			WorkerID:  b.WorkerID,
			Rating:    rating,
			Comment:   strings.TrimSpace(comment),
			CreatedAt: now,
		}
		b.Review = &review
		b.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.Reviews.AddReview(ctx, updated.WorkerID, review); err != nil {
		if !utils.IsNotFound(err) {
			return nil, err
		}
		s.Logger.Warn("Reviewed worker is not listed", zap.String("workerID", updated.WorkerID))
	}
	s.notify(ctx, updated.WorkerID, models.NotifyBooking, "New review",
		fmt.Sprintf("You received a %d star review", rating), "/bookings/"+updated.ID)
	return updated, nil
}

func paymentOpen(b *models.Booking, clientID string) error {
	if b.Status != models.StatusCompleted {
		return utils.NewStateError("payment requires a completed booking (status is %s)", b.Status)
	}
	if b.ClientID != clientID {
		return utils.NewAuthError("only the booking's client can pay for it")
	}
	if b.Payment != nil && b.Payment.Status != models.PaymentFailed {
		return utils.NewStateError("booking %s already has a %s payment", b.ID, b.Payment.Status)
	}
	return nil
}

// AttachPayment settles a completed booking. A failed payment may be retried; a pending
// or completed one may not.
func (s *DefaultBookingService) AttachPayment(ctx context.Context, req models.PaymentRequest) (*models.Booking, error) {
	current, err := s.Bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if err := paymentOpen(current, req.ClientID); err != nil {
		return nil, err
	}

	payment, err := s.Payments.ProcessPayment(ctx, req)
	if err != nil {
		return nil, err
	}

	updated, err := s.Bookings.Mutate(ctx, req.BookingID, func(b *models.Booking) error {
		if err := paymentOpen(b, req.ClientID); err != nil {
			return err
		}
		b.Payment = payment
		b.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, updated.ClientID, models.NotifyPayment, "Payment "+string(payment.Status),
		fmt.Sprintf("Payment of %s %.2f via %s is %s", payment.Currency, payment.Amount, payment.Method, payment.Status),
		"/bookings/"+updated.ID)
	return updated, nil
}
