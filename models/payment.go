package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	MethodUPI      PaymentMethod = "upi"
	MethodCard     PaymentMethod = "card"
	MethodCash     PaymentMethod = "cash"
	MethodRazorpay PaymentMethod = "razorpay"
	MethodStripe   PaymentMethod = "stripe"
)

// Payment settles a completed booking. Its status is tracked independently of the booking.
type Payment struct {
	ID            string        `bson:"id" json:"id"`
	BookingID     string        `bson:"bookingId" json:"bookingId"`
	Amount        float64       `bson:"amount" json:"amount"`
	Currency      string        `bson:"currency" json:"currency"`
	Status        PaymentStatus `bson:"status" json:"status"`
	Method        PaymentMethod `bson:"method" json:"method"`
	TransactionID string        `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	ReceiptURL    string        `bson:"receiptUrl,omitempty" json:"receiptUrl,omitempty"`
	FailureReason string        `bson:"failureReason,omitempty" json:"failureReason,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}

// PaymentRequest is the input to a payment processor.
type PaymentRequest struct {
	BookingID string        `json:"bookingId"`
	ClientID  string        `json:"clientId"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	Method    PaymentMethod `json:"method"`
}
