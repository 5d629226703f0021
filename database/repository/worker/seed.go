package workerRepo

import (
	"fmt"
	"time"

	"servicelink/models"
)

var seedTime = time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)

// SeedWorkers returns the demo workers listed before any real worker signs up.
func SeedWorkers() []models.WorkerProfile {
	return []models.WorkerProfile{
		{
			User: models.User{
				ID:           "w1",
				Name:         "Raj Kumar",
				Email:        "raj@example.com",
				Phone:        "+919876543210",
				Role:         models.RoleWorker,
				ProfileImage: "https://randomuser.me/api/portraits/men/32.jpg",
				CreatedAt:    seedTime,
				Verified:     true,
			},
			Skills:       []models.Skill{{ID: "skill1", Name: "Electrician"}},
			Experience:   8,
			Availability: models.DefaultAvailability(),
			ServiceArea: models.ServiceArea{
				Type:     models.AreaRadius,
				Center:   &models.Coordinates{Latitude: 12.9716, Longitude: 77.5946},
				RadiusKm: 10,
			},
			VerifiedWorker: true,
			Rating:         4.8,
			Reviews:        SeedReviews("w1", 5, 5, 5, 5, 4),
		},
		{
			User: models.User{
				ID:           "w2",
				Name:         "Priya Singh",
				Email:        "priya@example.com",
				Phone:        "+919876543211",
				Role:         models.RoleWorker,
				ProfileImage: "https://randomuser.me/api/portraits/women/44.jpg",
				CreatedAt:    seedTime,
				Verified:     true,
			},
			Skills:       []models.Skill{{ID: "skill2", Name: "Plumber"}},
			Experience:   6,
			Availability: models.DefaultAvailability(),
			ServiceArea: models.ServiceArea{
				Type:     models.AreaRadius,
				Center:   &models.Coordinates{Latitude: 12.9516, Longitude: 77.5846},
				RadiusKm: 10,
			},
			VerifiedWorker: true,
			Rating:         4.9,
			Reviews:        SeedReviews("w2", 5, 5, 5, 5, 5, 5, 5, 5, 5, 4),
		},
	}
}

// SeedReviews builds the historical reviews behind a demo worker's rating.
func SeedReviews(workerID string, ratings ...int) []models.Review {
	reviews := make([]models.Review, 0, len(ratings))
	for i, rating := range ratings {
		reviews = append(reviews, models.Review{
			ID:        fmt.Sprintf("seed-%s-%d", workerID, i+1),
			BookingID: fmt.Sprintf("seed-booking-%s-%d", workerID, i+1),
			ClientID:  "client123",
			WorkerID:  workerID,
			Rating:    rating,
			CreatedAt: seedTime.AddDate(0, 0, -7*(len(ratings)-i)),
		})
	}
	return reviews
}
