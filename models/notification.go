package models

import "time"

type NotificationType string

const (
	NotifyBooking NotificationType = "booking"
	NotifyMessage NotificationType = "message"
	NotifyPayment NotificationType = "payment"
	NotifySystem  NotificationType = "system"
)

type Notification struct {
	ID        string           `bson:"id" json:"id"`
	UserID    string           `bson:"userId" json:"userId"`
	Type      NotificationType `bson:"type" json:"type"`
	Title     string           `bson:"title" json:"title"`
	Message   string           `bson:"message" json:"message"`
	Read      bool             `bson:"read" json:"read"`
	ActionURL string           `bson:"actionUrl,omitempty" json:"actionUrl,omitempty"`
	CreatedAt time.Time        `bson:"createdAt" json:"createdAt"`
}

// ReminderPayload is the asynq payload for an upcoming-booking reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireAt    string `json:"fireAt"`
}
