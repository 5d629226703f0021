package bookingRepo

import (
	"context"

	"servicelink/models"
)

// BookingFilter selects bookings by party and status. Empty fields match everything.
type BookingFilter struct {
	ClientID string
	WorkerID string
	Status   models.BookingStatus
}

// Matches reports whether a booking satisfies the filter.
func (f BookingFilter) Matches(b models.Booking) bool {
	if f.ClientID != "" && b.ClientID != f.ClientID {
		return false
	}
	if f.WorkerID != "" && b.WorkerID != f.WorkerID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	return true
}

// MutateFunc edits a booking in place. Returning an error aborts the write.
type MutateFunc func(b *models.Booking) error

// BookingRepository defines methods for finalized booking access.
type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) error
	// GetByID returns a NotFoundError when the booking does not exist.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// List returns matching bookings, newest first.
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	// Mutate applies fn to the stored booking atomically and returns the result.
	Mutate(ctx context.Context, id string, fn MutateFunc) (*models.Booking, error)
}
