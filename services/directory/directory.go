package directory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	workerRepo "servicelink/database/repository/worker"
	"servicelink/models"
	"servicelink/utils"

	"go.uber.org/zap"
)

// SearchParams are combined conjunctively. Zero values disable a filter.
type SearchParams struct {
	Query        string  `form:"query"`
	Skill        string  `form:"skill"`
	MinRating    float64 `form:"minRating"`
	MaxDistance  float64 `form:"maxDistance"`
	VerifiedOnly bool    `form:"verifiedOnly"`
	AvailableNow bool    `form:"availableNow"`
}

// Directory serves worker listings. The latest snapshot is replaced wholesale, and a
// slow response never overwrites one from a newer request.
type Directory struct {
	repo    workerRepo.WorkerRepository
	latency time.Duration
	now     func() time.Time
	logger  *zap.Logger

	tickets atomic.Uint64

	mu        sync.RWMutex
	workers   []models.WorkerProfile
	committed uint64
}

type Option func(*Directory)

// WithLatency delays every repository call, for demo parity with the mock backend.
func WithLatency(d time.Duration) Option {
	return func(dir *Directory) { dir.latency = d }
}

// WithClock replaces time.Now for the available-now filter.
func WithClock(now func() time.Time) Option {
	return func(dir *Directory) { dir.now = now }
}

func New(repo workerRepo.WorkerRepository, logger *zap.Logger, opts ...Option) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Directory{repo: repo, now: time.Now, logger: logger, workers: []models.WorkerProfile{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Directory) wait(ctx context.Context) error {
	if d.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// commit stores ws unless a newer ticket already committed.
func (d *Directory) commit(ticket uint64, ws []models.WorkerProfile) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if ticket < d.committed {
		d.logger.Debug("dropping stale directory result", zap.Uint64("ticket", ticket), zap.Uint64("committed", d.committed))
		return false
	}
	d.committed = ticket
	d.workers = cloneAll(ws)
	return true
}

// FetchAll loads every worker and replaces the snapshot.
func (d *Directory) FetchAll(ctx context.Context) ([]models.WorkerProfile, error) {
	ticket := d.tickets.Add(1)
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	ws, err := d.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rank(ws)
	d.commit(ticket, ws)
	return ws, nil
}

// Search filters workers and replaces the snapshot with the result. origin may be nil,
// in which case MaxDistance is ignored.
func (d *Directory) Search(ctx context.Context, p SearchParams, origin *models.Coordinates) ([]models.WorkerProfile, error) {
	if p.MinRating < 0 || p.MaxDistance < 0 {
		return nil, utils.NewValidationError("filters cannot be negative", "minRating", "maxDistance")
	}
	ticket := d.tickets.Add(1)
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	candidates, err := d.repo.Find(ctx, workerRepo.WorkerFilter{
		Skill:        p.Skill,
		MinRating:    p.MinRating,
		VerifiedOnly: p.VerifiedOnly,
	})
	if err != nil {
		return nil, err
	}

	if p.MaxDistance > 0 && origin == nil {
		d.logger.Warn("maxDistance ignored: caller location unknown")
	}
	query := strings.TrimSpace(p.Query)
	now := d.now()

	out := make([]models.WorkerProfile, 0, len(candidates))
	for _, w := range candidates {
		if query != "" && !w.MatchesQuery(query) {
			continue
		}
		if p.MaxDistance > 0 && origin != nil {
			dist := Distance(origin, w)
			if dist == nil || *dist > p.MaxDistance {
				continue
			}
		}
		if p.AvailableNow && !w.Availability.AvailableAt(now) {
			continue
		}
		out = append(out, w)
	}
	rank(out)
	d.commit(ticket, out)
	return out, nil
}

// Workers returns a copy of the current snapshot.
func (d *Directory) Workers() []models.WorkerProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cloneAll(d.workers)
}

// GetByID returns (nil, nil) when the worker does not exist.
func (d *Directory) GetByID(ctx context.Context, id string) (*models.WorkerProfile, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	w, err := d.repo.GetByID(ctx, id)
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

// Distance is the haversine distance in km from origin to the worker's service-area
// center. It is nil when either end is unknown.
func Distance(origin *models.Coordinates, w models.WorkerProfile) *float64 {
	if origin == nil || w.ServiceArea.Center == nil {
		return nil
	}
	km := origin.DistanceKm(*w.ServiceArea.Center)
	return &km
}

// rank orders verified workers first, then by rating, then by name.
func rank(ws []models.WorkerProfile) {
	sort.SliceStable(ws, func(i, j int) bool {
		a, b := ws[i], ws[j]
		if a.VerifiedWorker != b.VerifiedWorker {
			return a.VerifiedWorker
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Name < b.Name
	})
}

func cloneAll(ws []models.WorkerProfile) []models.WorkerProfile {
	out := make([]models.WorkerProfile, len(ws))
	for i, w := range ws {
		out[i] = w.Clone()
	}
	return out
}
