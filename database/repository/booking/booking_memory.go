package bookingRepo

import (
	"context"
	"sort"
	"sync"

	"servicelink/models"
	"servicelink/utils"
)

// MemoryBookingRepo keeps finalized bookings in process.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

func NewMemoryBookingRepo(seed []models.Booking) *MemoryBookingRepo {
	r := &MemoryBookingRepo{bookings: make(map[string]models.Booking, len(seed))}
	for _, b := range seed {
		r.bookings[b.ID] = b.Clone()
	}
	return r
}

func (r *MemoryBookingRepo) Create(ctx context.Context, booking models.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bookings[booking.ID]; exists {
		return utils.NewStateError("booking %s already exists", booking.ID)
	}
	r.bookings[booking.ID] = booking.Clone()
	return nil
}

func (r *MemoryBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, utils.NewNotFoundError("booking", id)
	}
	out := b.Clone()
	return &out, nil
}

func (r *MemoryBookingRepo) List(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if filter.Matches(b) {
			out = append(out, b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryBookingRepo) Mutate(ctx context.Context, id string, fn MutateFunc) (*models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, utils.NewNotFoundError("booking", id)
	}
	work := b.Clone()
	if err := fn(&work); err != nil {
		return nil, err
	}
	r.bookings[id] = work.Clone()
	return &work, nil
}
