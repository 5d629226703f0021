package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingRepo "servicelink/database/repository/booking"
	"servicelink/models"
	"servicelink/services/notification"
	"servicelink/services/tasks"
	"servicelink/utils"

	"go.uber.org/zap"
)

// BookingService owns the per-session draft and the finalized booking collection.
type BookingService interface {
	Initiate(ctx context.Context, sessionID, clientID, workerID, service string) (*models.DraftBooking, error)
	SetDateTime(ctx context.Context, sessionID, date string, slot models.TimeSlot) (*models.DraftBooking, error)
	SetLocation(ctx context.Context, sessionID string, addr models.Address) (*models.DraftBooking, error)
	AddNotes(ctx context.Context, sessionID, text string) (*models.DraftBooking, error)
	Finalize(ctx context.Context, sessionID string) (*models.Booking, error)
	Draft(ctx context.Context, sessionID string) (*models.DraftBooking, error)
	Abandon(ctx context.Context, sessionID string) error

	List(ctx context.Context, filter bookingRepo.BookingFilter) ([]models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string, actor models.Role) (*models.Booking, error)
	AttachReview(ctx context.Context, bookingID, clientID string, rating int, comment string) (*models.Booking, error)
	AttachPayment(ctx context.Context, req models.PaymentRequest) (*models.Booking, error)
}

// WorkerLookup resolves workers for slot and service-area checks. A missing worker is
// reported as (nil, nil).
type WorkerLookup interface {
	GetByID(ctx context.Context, id string) (*models.WorkerProfile, error)
}

// ReviewSink records a review against the worker's profile.
type ReviewSink interface {
	AddReview(ctx context.Context, workerID string, review models.Review) (*models.WorkerProfile, error)
}

// PaymentProcessor settles a payment request.
type PaymentProcessor interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Payment, error)
}

const (
	DefaultDraftTTL = 30 * time.Minute
	maxNotesLength  = 1000
	reminderLead    = time.Hour
)

// Options configures time handling and draft lifetime.
type Options struct {
	DraftTTL time.Duration
	// Location is the zone scheduled dates and slots are expressed in.
	Location *time.Location
}

// DefaultBookingService is the production implementation. Notifier and Reminders are
// optional.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Workers   WorkerLookup
	Reviews   ReviewSink
	Payments  PaymentProcessor
	Notifier  notification.NotificationService
	Reminders tasks.ReminderScheduler
	Logger    *zap.Logger

	drafts draftStore
	loc    *time.Location
	now    func() time.Time
	mu     sync.Mutex
}

func NewDefaultBookingService(
	kv utils.KVStore,
	bookings bookingRepo.BookingRepository,
	workers WorkerLookup,
	reviews ReviewSink,
	payments PaymentProcessor,
	logger *zap.Logger,
	opts Options,
) (*DefaultBookingService, error) {
	if kv == nil || bookings == nil || workers == nil || reviews == nil || payments == nil {
		return nil, fmt.Errorf("booking service initialization error: one or more dependencies are nil")
	}
	if opts.DraftTTL <= 0 {
		opts.DraftTTL = DefaultDraftTTL
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		Bookings: bookings,
		Workers:  workers,
		Reviews:  reviews,
		Payments: payments,
		Logger:   logger,
		drafts:   draftStore{kv: kv, ttl: opts.DraftTTL},
		loc:      opts.Location,
		now:      time.Now,
	}, nil
}

// notify is best effort: inbox failures never fail the booking operation.
func (s *DefaultBookingService) notify(ctx context.Context, userID string, typ models.NotificationType, title, msg, url string) {
	if s.Notifier == nil || userID == "" {
		return
	}
	if err := s.Notifier.Notify(ctx, userID, typ, title, msg, url); err != nil {
		s.Logger.Warn("Failed to send notification", zap.String("userID", userID), zap.Error(err))
	}
}
