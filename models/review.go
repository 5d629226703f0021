package models

import "time"

// Review is a client's rating of a completed booking; at most one per booking.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	BookingID string    `bson:"bookingId" json:"bookingId"`
	ClientID  string    `bson:"clientId" json:"clientId"`
	WorkerID  string    `bson:"workerId" json:"workerId"`
	Rating    int       `bson:"rating" json:"rating"` // 1 to 5
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
