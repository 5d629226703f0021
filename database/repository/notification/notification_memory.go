package notificationRepo

import (
	"context"
	"sort"
	"sync"

	"servicelink/models"
	"servicelink/utils"
)

type MemoryNotificationRepo struct {
	mu     sync.RWMutex
	byUser map[string][]models.Notification
}

func NewMemoryNotificationRepo() *MemoryNotificationRepo {
	return &MemoryNotificationRepo{byUser: make(map[string][]models.Notification)}
}

func (r *MemoryNotificationRepo) Create(ctx context.Context, n models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[n.UserID] = append(r.byUser[n.UserID], n)
	return nil
}

func (r *MemoryNotificationRepo) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]models.Notification{}, r.byUser[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryNotificationRepo) MarkRead(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byUser[userID]
	for i := range list {
		if list[i].ID == id {
			list[i].Read = true
			return nil
		}
	}
	return utils.NewNotFoundError("notification", id)
}
