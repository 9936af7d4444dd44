package service

import (
	"context"
	"sync"
	"time"

	"taxi_dispatch/internal/models"
)

// MonitoringService assembles the terminal-state snapshot and holds the two
// pieces of purely transient state: the last known position and the most
// recent error message.
type MonitoringService struct {
	session sessionReader
	status  statusReader

	mu        sync.Mutex
	pos       *models.Position
	lastError string
	updatedAt time.Time
}

func NewMonitoringService(session sessionReader, status statusReader) *MonitoringService {
	return &MonitoringService{session: session, status: status}
}

// GetState returns the current snapshot: session fields, status with display
// color, last position and transient error.
func (s *MonitoringService) GetState(ctx context.Context) (models.TerminalState, error) {
	sess := s.session.Current()
	label, err := s.status.CurrentStatus(ctx)
	if err != nil {
		return models.TerminalState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := models.TerminalState{
		Name:        sess.Name,
		Role:        sess.Role,
		LoggedIn:    sess.LoggedIn,
		Status:      label,
		StatusColor: models.StatusColor(label),
		LastError:   s.lastError,
		UpdatedAt:   s.updatedAt,
	}
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now().UTC()
	}
	if s.pos != nil {
		p := *s.pos
		state.Position = &p
	}
	return state, nil
}

// SetPosition records the last known coordinate.
func (s *MonitoringService) SetPosition(p models.Position) {
	s.mu.Lock()
	s.pos = &p
	s.updatedAt = time.Now().UTC()
	s.mu.Unlock()
}

// SetLastError records a transient message. It stays until overwritten or
// until ClearTransient; there is no dismiss action.
func (s *MonitoringService) SetLastError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.updatedAt = time.Now().UTC()
	s.mu.Unlock()
}

// ClearTransient clears position and error, used when tracking stops.
func (s *MonitoringService) ClearTransient() {
	s.mu.Lock()
	s.pos = nil
	s.lastError = ""
	s.updatedAt = time.Now().UTC()
	s.mu.Unlock()
}
