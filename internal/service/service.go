package service

import (
	"context"
	"time"

	"taxi_dispatch/internal/logger"
	"taxi_dispatch/internal/models"
	"taxi_dispatch/internal/position"
	"taxi_dispatch/internal/repository"
)

// Authorization owns the operator session: PIN login, logout with full wipe,
// pin change, and the bearer tokens used by the HTTP layer.
type Authorization interface {
	Restore(ctx context.Context) error
	Login(ctx context.Context, pin string) (models.Session, string, error)
	Logout(ctx context.Context) error
	ChangePin(ctx context.Context, actingPin, newPin string) error
	Drivers(ctx context.Context) ([]models.Driver, error)
	ParseToken(accessToken string) (*Claims, error)
	Current() models.Session
}

// Availability owns the driver's availability label.
type Availability interface {
	SetStatus(ctx context.Context, label string) error
	CurrentStatus(ctx context.Context) (string, error)
	Options() []models.StatusOption
}

// History is the append-only location history log.
type History interface {
	Load(ctx context.Context) error
	Append(ctx context.Context, e models.HistoryEntry) error
	List() []models.HistoryEntry
	Reset()
}

// Monitoring exposes the terminal-state snapshot for the presentation client
// and records the last position and transient error message.
type Monitoring interface {
	GetState(ctx context.Context) (models.TerminalState, error)
	SetPosition(p models.Position)
	SetLastError(msg string)
	ClearTransient()
}

// Tracker runs the background loop that owns the position subscription.
// Stop via context cancellation in main() for graceful shutdown.
type Tracker interface {
	Run(ctx context.Context, poll time.Duration)
}

// Narrow read interfaces shared by services that only observe state.
type sessionReader interface {
	Current() models.Session
}

type statusReader interface {
	CurrentStatus(ctx context.Context) (string, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Availability
	History
	Monitoring
	Tracker
}

// NewService wires the repository layer and position source into concrete
// services.
func NewService(repos *repository.Repository, src position.Source, log *logger.Logger) *Service {
	hist := NewHistoryService(repos.KV)
	avail := NewAvailabilityService(repos.KV)
	auth := NewAuthService(repos.Credentials, repos.KV, hist)
	mon := NewMonitoringService(auth, avail)
	return &Service{
		Authorization: auth,
		Availability:  avail,
		History:       hist,
		Monitoring:    mon,
		Tracker:       NewTrackerService(src, auth, avail, hist, mon, log),
	}
}
