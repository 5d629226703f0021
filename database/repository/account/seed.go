package accountRepo

import (
	"time"

	workerRepo "servicelink/database/repository/worker"
	"servicelink/models"
)

var seedTime = time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)

// SeedAccounts returns the demo client and worker used by the in-memory backend.
func SeedAccounts() []models.Account {
	client := models.ClientProfile{
		User: models.User{
			ID:           "client123",
			Name:         "John Doe",
			Email:        "john@example.com",
			Phone:        "+91987654321",
			Role:         models.RoleClient,
			ProfileImage: "https://randomuser.me/api/portraits/men/1.jpg",
			CreatedAt:    seedTime,
			Verified:     true,
		},
		Addresses: []models.Address{{
			ID:           "addr1",
			Label:        "Home",
			AddressLine1: "123 Main St",
			City:         "Bangalore",
			State:        "Karnataka",
			Pincode:      "560001",
			IsDefault:    true,
			Coordinates:  models.Coordinates{Latitude: 12.9716, Longitude: 77.5946},
		}},
	}
	worker := SeedWorkerAccount()
	return []models.Account{{Client: &client}, {Worker: &worker}}
}

// SeedWorkerAccount is the demo worker's full profile. It is also listed in the directory.
func SeedWorkerAccount() models.WorkerProfile {
	return models.WorkerProfile{
		User: models.User{
			ID:           "worker456",
			Name:         "Mike Smith",
			Email:        "mike@example.com",
			Phone:        "+91876543210",
			Role:         models.RoleWorker,
			ProfileImage: "https://randomuser.me/api/portraits/men/2.jpg",
			CreatedAt:    seedTime,
			Verified:     true,
		},
		Skills:       []models.Skill{{ID: "skill1", Name: "Electrician"}},
		Experience:   5,
		Availability: models.DefaultAvailability(),
		ServiceArea: models.ServiceArea{
			Type:     models.AreaRadius,
			Center:   &models.Coordinates{Latitude: 12.9716, Longitude: 77.5946},
			RadiusKm: 10,
		},
		VerifiedWorker: true,
		Rating:         4.8,
		Reviews:        workerRepo.SeedReviews("worker456", 5, 5, 5, 5, 4),
	}
}
