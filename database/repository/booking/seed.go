package bookingRepo

import (
	"time"

	"servicelink/models"
)

// SeedBookings returns the two demo bookings, dated relative to now.
func SeedBookings(now time.Time) []models.Booking {
	home := models.Address{
		ID:           "addr1",
		Label:        "Home",
		AddressLine1: "123 Main St",
		City:         "Bangalore",
		State:        "Karnataka",
		Pincode:      "560001",
		IsDefault:    true,
		Coordinates:  models.Coordinates{Latitude: 12.9716, Longitude: 77.5946},
	}
	day := 24 * time.Hour
	return []models.Booking{
		{
			ID:            "booking1",
			ClientID:      "client123",
			WorkerID:      "worker456",
			Service:       "Electrical Repair",
			Status:        models.StatusConfirmed,
			ScheduledDate: now.Add(day).Format(models.DateLayout),
			ScheduledTime: models.TimeSlot{Start: "10:00", End: "12:00"},
			Location:      home,
			CreatedAt:     now.Add(-day),
			UpdatedAt:     now,
		},
		{
			ID:            "booking2",
			ClientID:      "client123",
			WorkerID:      "worker789",
			Service:       "Plumbing",
			Status:        models.StatusCompleted,
			ScheduledDate: now.Add(-2 * day).Format(models.DateLayout),
			ScheduledTime: models.TimeSlot{Start: "14:00", End: "16:00"},
			Location:      home,
			Payment: &models.Payment{
				ID:            "payment1",
				BookingID:     "booking2",
				Amount:        1200,
				Currency:      "INR",
				Status:        models.PaymentCompleted,
				Method:        models.MethodUPI,
				TransactionID: "txn123456",
				ReceiptURL:    "/receipt/txn123456",
				CreatedAt:     now.Add(-2*day + 10*time.Minute),
			},
			Review: &models.Review{
				ID:        "review1",
				BookingID: "booking2",
				ClientID:  "client123",
				WorkerID:  "worker789",
				Rating:    4,
				Comment:   "Good service, arrived on time",
				CreatedAt: now.Add(-2*day + 30*time.Minute),
			},
			CreatedAt: now.Add(-3 * day),
			UpdatedAt: now.Add(-2*day + 10*time.Minute),
		},
	}
}
