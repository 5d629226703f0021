package booking

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"servicelink/models"
	"servicelink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) worker(ctx context.Context, id string) (*models.WorkerProfile, error) {
	w, err := s.Workers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, utils.NewNotFoundError("worker", id)
	}
	return w, nil
}

// Initiate starts a draft for the given worker and service, replacing any unfinished one.
func (s *DefaultBookingService) Initiate(ctx context.Context, sessionID, clientID, workerID, service string) (*models.DraftBooking, error) {
	service = strings.TrimSpace(service)
	var missing []string
	if workerID == "" {
		missing = append(missing, "workerId")
	}
	if service == "" {
		missing = append(missing, "service")
	}
	if len(missing) > 0 {
		return nil, utils.NewValidationError("", missing...)
	}
	w, err := s.worker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if !w.HasSkill(service) {
		return nil, utils.NewValidationError(fmt.Sprintf("%s does not offer %s", w.Name, service), "service")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	draft := models.DraftBooking{
		SessionID: sessionID,
		ClientID:  clientID,
		WorkerID:  workerID,
		Service:   service,
		Status:    models.StatusPending,
		CreatedAt: s.now(),
	}
	if err := s.drafts.save(ctx, draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// mutateDraft loads the session draft, applies fn and saves it back.
func (s *DefaultBookingService) mutateDraft(ctx context.Context, sessionID string, fn func(d *models.DraftBooking) error) (*models.DraftBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.drafts.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	if err := s.drafts.save(ctx, *draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SetDateTime schedules the draft. The slot must be one the worker offers on that weekday.
func (s *DefaultBookingService) SetDateTime(ctx context.Context, sessionID, date string, slot models.TimeSlot) (*models.DraftBooking, error) {
	return s.mutateDraft(ctx, sessionID, func(d *models.DraftBooking) error {
		day, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(date), s.loc)
		if err != nil {
			return utils.NewValidationError("date must be YYYY-MM-DD", "scheduledDate")
		}
		now := s.now().In(s.loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
		if day.Before(today) {
			return utils.NewValidationError("date is in the past", "scheduledDate")
		}
		if err := slot.Validate(); err != nil {
			return err
		}
		w, err := s.worker(ctx, d.WorkerID)
		if err != nil {
			return err
		}
		if !w.Availability.Offers(day, slot) {
			return utils.NewValidationError(
				fmt.Sprintf("%s is not offered on %s", slot, models.WeekdayOf(day.Weekday())), "scheduledTime")
		}
		start, _, _ := slot.Minutes()
		if day.Equal(today) && start <= now.Hour()*60+now.Minute() {
			return utils.NewValidationError("slot has already started", "scheduledTime")
		}
		d.ScheduledDate = day.Format(models.DateLayout)
		d.ScheduledTime = &slot
		return nil
	})
}

// SetLocation attaches a copy of the address. It must lie in the worker's service area.
func (s *DefaultBookingService) SetLocation(ctx context.Context, sessionID string, addr models.Address) (*models.DraftBooking, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return s.mutateDraft(ctx, sessionID, func(d *models.DraftBooking) error {
		w, err := s.worker(ctx, d.WorkerID)
		if err != nil {
			return err
		}
		if w.ServiceArea.Type != "" && !w.ServiceArea.Covers(addr) {
			return utils.NewValidationError("address is outside the worker's service area", "location")
		}
		snapshot := addr
		d.Location = &snapshot
		return nil
	})
}

// AddNotes stores trimmed free text. Empty text clears the notes.
func (s *DefaultBookingService) AddNotes(ctx context.Context, sessionID, text string) (*models.DraftBooking, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > maxNotesLength {
		return nil, utils.NewValidationError(fmt.Sprintf("notes cannot exceed %d characters", maxNotesLength), "notes")
	}
	return s.mutateDraft(ctx, sessionID, func(d *models.DraftBooking) error {
		d.Notes = text
		return nil
	})
}

func (s *DefaultBookingService) Draft(ctx context.Context, sessionID string) (*models.DraftBooking, error) {
	return s.drafts.get(ctx, sessionID)
}

func (s *DefaultBookingService) Abandon(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts.delete(ctx, sessionID)
}

// Finalize persists the draft as a pending booking and clears it. Nothing is written when
// a required field is missing.
func (s *DefaultBookingService) Finalize(ctx context.Context, sessionID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.drafts.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if missing := draft.MissingFields(); len(missing) > 0 {
		return nil, utils.NewValidationError("", missing...)
	}

	now := s.now()
	b := models.Booking{
		ID:            uuid.New().String(),
		ClientID:      draft.ClientID,
		WorkerID:      draft.WorkerID,
		Service:       draft.Service,
		Status:        models.StatusPending,
		ScheduledDate: draft.ScheduledDate,
		ScheduledTime: *draft.ScheduledTime,
		Location:      *draft.Location,
		Notes:         draft.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	if err := s.drafts.delete(ctx, sessionID); err != nil {
		s.Logger.Warn("Failed to clear booking draft", zap.String("sessionID", sessionID), zap.Error(err))
	}

	s.Logger.Info("Booking created", zap.String("bookingID", b.ID), zap.String("workerID", b.WorkerID))
	s.notify(ctx, b.WorkerID, models.NotifyBooking, "New booking request",
		fmt.Sprintf("%s on %s at %s", b.Service, b.ScheduledDate, b.ScheduledTime.Start), "/bookings/"+b.ID)
	return &b, nil
}
