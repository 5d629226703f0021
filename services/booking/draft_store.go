package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"servicelink/models"
	"servicelink/utils"
)

const draftKeyPrefix = "draft:"

// draftStore keeps one draft per session with a sliding TTL.
type draftStore struct {
	kv  utils.KVStore
	ttl time.Duration
}

func (d draftStore) get(ctx context.Context, sessionID string) (*models.DraftBooking, error) {
	b, err := d.kv.Get(ctx, draftKeyPrefix+sessionID)
	if errors.Is(err, utils.ErrKeyNotFound) {
		return nil, utils.NewStateError("no booking in progress")
	}
	if err != nil {
		return nil, err
	}
	var draft models.DraftBooking
	if err := json.Unmarshal(b, &draft); err != nil {
		return nil, fmt.Errorf("failed to parse booking draft: %w", err)
	}
	return &draft, nil
}

func (d draftStore) save(ctx context.Context, draft models.DraftBooking) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}
	return d.kv.Set(ctx, draftKeyPrefix+draft.SessionID, b, d.ttl)
}

func (d draftStore) delete(ctx context.Context, sessionID string) error {
	return d.kv.Del(ctx, draftKeyPrefix+sessionID)
}
