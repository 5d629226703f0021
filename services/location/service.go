package location

import (
	"context"
	"sync"

	"servicelink/models"

	"go.uber.org/zap"
)

type sessionLocation struct {
	coord   *models.Coordinates
	lastErr string
}

// Service holds the caller coordinate of each session. A failed detection keeps the
// previous coordinate and records the error message.
type Service struct {
	geo    Geolocator
	logger *zap.Logger

	mu    sync.RWMutex
	state map[string]sessionLocation
}

func NewService(geo Geolocator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{geo: geo, logger: logger, state: make(map[string]sessionLocation)}
}

// GetCurrentLocation runs one detection attempt. There is no retry.
func (s *Service) GetCurrentLocation(ctx context.Context, sessionID, hint string) (models.Coordinates, error) {
	coord, err := s.geo.Locate(ctx, hint)

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state[sessionID]
	if err != nil {
		st.lastErr = err.Error()
		s.state[sessionID] = st
		s.logger.Info("location detection failed", zap.String("sessionID", sessionID), zap.Error(err))
		return models.Coordinates{}, err
	}
	st.coord = &coord
	st.lastErr = ""
	s.state[sessionID] = st
	return coord, nil
}

// SetLocation is the manual override. It clears any detection error.
func (s *Service) SetLocation(sessionID string, coord models.Coordinates) error {
	if err := coord.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[sessionID] = sessionLocation{coord: &coord}
	return nil
}

// Current returns the session's coordinate (nil when unknown) and the last error message.
func (s *Service) Current(sessionID string) (*models.Coordinates, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.state[sessionID]
	if !ok || st.coord == nil {
		return nil, st.lastErr
	}
	c := *st.coord
	return &c, st.lastErr
}

// Forget drops the session's location state.
func (s *Service) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state, sessionID)
}
