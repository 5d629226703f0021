package workerRepo

import (
	"context"

	"servicelink/models"
)

// WorkerFilter holds the exact-match criteria a store can evaluate itself.
// Free-text, distance and availability filters are applied by the directory.
type WorkerFilter struct {
	Skill        string
	MinRating    float64
	VerifiedOnly bool
}

// Matches reports whether a worker satisfies the filter.
func (f WorkerFilter) Matches(w models.WorkerProfile) bool {
	if f.Skill != "" && !w.HasSkill(f.Skill) {
		return false
	}
	if f.MinRating > 0 && w.Rating < f.MinRating {
		return false
	}
	if f.VerifiedOnly && !w.VerifiedWorker {
		return false
	}
	return true
}

// WorkerRepository defines methods for worker profile access.
type WorkerRepository interface {
	// GetAll retrieves every listed worker.
	GetAll(ctx context.Context) ([]models.WorkerProfile, error)
	// Find retrieves workers matching the filter.
	Find(ctx context.Context, filter WorkerFilter) ([]models.WorkerProfile, error)
	// GetByID returns a NotFoundError when the worker does not exist.
	GetByID(ctx context.Context, id string) (*models.WorkerProfile, error)
	// Upsert inserts or replaces a worker profile by id.
	Upsert(ctx context.Context, worker models.WorkerProfile) error
	// AddReview appends a review and stores the recomputed rating.
	AddReview(ctx context.Context, workerID string, review models.Review) (*models.WorkerProfile, error)
	// SetVerified flips the verification flag.
	SetVerified(ctx context.Context, workerID string, verified bool) error
}
