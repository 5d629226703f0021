package models

import (
	"time"

	"servicelink/utils"
)

// BookingStatus is the lifecycle state of a finalized booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// DateLayout is the scheduledDate format.
const DateLayout = "2006-01-02"

// transitions lists every legal status edge; completed and cancelled are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// actorTargets lists the statuses each party may move a booking into. Clients may only
// cancel; confirming and completing belong to the worker.
var actorTargets = map[Role][]BookingStatus{
	RoleClient: {StatusCancelled},
	RoleWorker: {StatusConfirmed, StatusCompleted, StatusCancelled},
}

// MayMoveTo reports whether actor is allowed to set a booking to status to.
func MayMoveTo(actor Role, to BookingStatus) bool {
	for _, s := range actorTargets[actor] {
		if s == to {
			return true
		}
	}
	return false
}

// ParseBookingStatus validates a status string.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", utils.NewValidationError("unknown booking status "+s, "status")
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s BookingStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// Booking is a finalized booking record.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	ClientID      string        `bson:"clientId" json:"clientId"`
	WorkerID      string        `bson:"workerId" json:"workerId"`
	Service       string        `bson:"service" json:"service"` // skill name
	Status        BookingStatus `bson:"status" json:"status"`
	ScheduledDate string        `bson:"scheduledDate" json:"scheduledDate"` // YYYY-MM-DD
	ScheduledTime TimeSlot      `bson:"scheduledTime" json:"scheduledTime"`
	Location      Address       `bson:"location" json:"location"` // snapshot at booking time
	Notes         string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Payment       *Payment      `bson:"payment,omitempty" json:"payment,omitempty"`
	Review        *Review       `bson:"review,omitempty" json:"review,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// StartsAt combines the scheduled date and slot start in loc.
func (b Booking) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+clockLayout, b.ScheduledDate+" "+b.ScheduledTime.Start, loc)
}

// Clone deep-copies the booking.
func (b Booking) Clone() Booking {
	if b.Payment != nil {
		p := *b.Payment
		b.Payment = &p
	}
	if b.Review != nil {
		r := *b.Review
		b.Review = &r
	}
	return b
}

// DraftBooking is the in-progress booking of one session. Pointer fields are unset until
// the matching wizard step runs.
type DraftBooking struct {
	SessionID     string        `json:"sessionId"`
	ClientID      string        `json:"clientId"`
	WorkerID      string        `json:"workerId"`
	Service       string        `json:"service"`
	Status        BookingStatus `json:"status"`
	ScheduledDate string        `json:"scheduledDate,omitempty"`
	ScheduledTime *TimeSlot     `json:"scheduledTime,omitempty"`
	Location      *Address      `json:"location,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// MissingFields lists required fields not yet populated, in wizard order.
func (d DraftBooking) MissingFields() []string {
	var missing []string
	if d.WorkerID == "" {
		missing = append(missing, "workerId")
	}
	if d.Service == "" {
		missing = append(missing, "service")
	}
	if d.ScheduledDate == "" {
		missing = append(missing, "scheduledDate")
	}
	if d.ScheduledTime == nil {
		missing = append(missing, "scheduledTime")
	}
	if d.Location == nil {
		missing = append(missing, "location")
	}
	return missing
}
