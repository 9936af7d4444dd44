package handlers

import (
	"context"

	"taxi_dispatch/internal/models"
	"taxi_dispatch/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	session    models.Session
	token      string
	loginErr   error
	logoutErr  error
	changeErr  error
	drivers    []models.Driver
	driversErr error
	claims     *service.Claims
	parseErr   error

	lastLoginPin     string
	lastParseToken   string
	lastChangeActing string
	lastChangeNew    string
	logoutCalls      int
}

func (m *mockAuth) Restore(ctx context.Context) error { return nil }
func (m *mockAuth) Login(ctx context.Context, pin string) (models.Session, string, error) {
	m.lastLoginPin = pin
	if m.loginErr != nil {
		return models.Session{}, "", m.loginErr
	}
	return m.session, m.token, nil
}
func (m *mockAuth) Logout(ctx context.Context) error {
	m.logoutCalls++
	return m.logoutErr
}
func (m *mockAuth) ChangePin(ctx context.Context, actingPin, newPin string) error {
	m.lastChangeActing = actingPin
	m.lastChangeNew = newPin
	return m.changeErr
}
func (m *mockAuth) Drivers(ctx context.Context) ([]models.Driver, error) {
	return m.drivers, m.driversErr
}
func (m *mockAuth) ParseToken(accessToken string) (*service.Claims, error) {
	m.lastParseToken = accessToken
	return m.claims, m.parseErr
}
func (m *mockAuth) Current() models.Session { return m.session }

type mockAvailability struct {
	current    string
	currentErr error
	setErr     error
	opts       []models.StatusOption

	lastSet  string
	setCalls int
}

func (m *mockAvailability) SetStatus(ctx context.Context, label string) error {
	m.setCalls++
	m.lastSet = label
	return m.setErr
}
func (m *mockAvailability) CurrentStatus(ctx context.Context) (string, error) {
	return m.current, m.currentErr
}
func (m *mockAvailability) Options() []models.StatusOption { return m.opts }

type mockHistory struct {
	entries   []models.HistoryEntry
	appendErr error
	loadErr   error
}

func (m *mockHistory) Load(ctx context.Context) error { return m.loadErr }
func (m *mockHistory) Append(ctx context.Context, e models.HistoryEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, e)
	return nil
}
func (m *mockHistory) List() []models.HistoryEntry { return m.entries }
func (m *mockHistory) Reset()                      { m.entries = nil }

type mockMonitoring struct {
	state models.TerminalState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.TerminalState, error) {
	return m.state, m.err
}
func (m *mockMonitoring) SetPosition(p models.Position) {}
func (m *mockMonitoring) SetLastError(msg string)       {}
func (m *mockMonitoring) ClearTransient()               {}

// ---- Shared Test Helpers ----

// loggedInAuth returns a mockAuth whose token and session pass the session
// middleware.
func loggedInAuth(role string) *mockAuth {
	name := "Kuljettaja"
	pin := "1254"
	if role == models.RoleAdmin {
		name = "Admin"
		pin = "7956"
	}
	return &mockAuth{
		session: models.Session{Pin: pin, Name: name, Role: role, LoggedIn: true},
		token:   "tok123",
		claims:  &service.Claims{Pin: pin, Name: name, Role: role},
	}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
