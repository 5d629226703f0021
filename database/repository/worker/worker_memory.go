package workerRepo

import (
	"context"
	"sort"
	"sync"

	"servicelink/models"
	"servicelink/utils"
)

// MemoryWorkerRepo keeps workers in process. It is the default backend and the mock data layer.
type MemoryWorkerRepo struct {
	mu      sync.RWMutex
	workers map[string]models.WorkerProfile
}

// NewMemoryWorkerRepo creates a repository holding copies of the given workers.
func NewMemoryWorkerRepo(seed []models.WorkerProfile) *MemoryWorkerRepo {
	r := &MemoryWorkerRepo{workers: make(map[string]models.WorkerProfile, len(seed))}
	for _, w := range seed {
		r.workers[w.ID] = w.Clone()
	}
	return r
}

// sorted returns workers in id order so results are stable between calls.
func (r *MemoryWorkerRepo) sorted(filter WorkerFilter) []models.WorkerProfile {
	out := make([]models.WorkerProfile, 0, len(r.workers))
	for _, w := range r.workers {
		if filter.Matches(w) {
			out = append(out, w.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *MemoryWorkerRepo) GetAll(ctx context.Context) ([]models.WorkerProfile, error) {
	return r.Find(ctx, WorkerFilter{})
}

func (r *MemoryWorkerRepo) Find(ctx context.Context, filter WorkerFilter) ([]models.WorkerProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(filter), nil
}

func (r *MemoryWorkerRepo) GetByID(ctx context.Context, id string) (*models.WorkerProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workers[id]
	if !ok {
		return nil, utils.NewNotFoundError("worker", id)
	}
	out := w.Clone()
	return &out, nil
}

func (r *MemoryWorkerRepo) Upsert(ctx context.Context, worker models.WorkerProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if worker.ID == "" {
		return utils.NewValidationError("worker id is required", "id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workers[worker.ID] = worker.Clone()
	return nil
}

func (r *MemoryWorkerRepo) AddReview(ctx context.Context, workerID string, review models.Review) (*models.WorkerProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workers[workerID]
	if !ok {
		return nil, utils.NewNotFoundError("worker", workerID)
	}
	w = w.Clone()
	w.AddReview(review)
	r.workers[workerID] = w
	out := w.Clone()
	return &out, nil
}

func (r *MemoryWorkerRepo) SetVerified(ctx context.Context, workerID string, verified bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workers[workerID]
	if !ok {
		return utils.NewNotFoundError("worker", workerID)
	}
	w.VerifiedWorker = verified
	r.workers[workerID] = w
	return nil
}
