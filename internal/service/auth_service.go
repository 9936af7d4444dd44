package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"taxi_dispatch/internal/models"
	"taxi_dispatch/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTTL   = 12 * time.Hour // one shift
	signingKey = "jks72hd0aqpl" // TODO: move to config
	minPinLen  = 4
)

// Domain errors for auth flows.
var (
	ErrInvalidCredential = errors.New("wrong pin")
	ErrPinTooShort       = errors.New("pin must be at least 4 characters")
	ErrInvalidToken      = errors.New("invalid token")
)

// AuthService is the single operator session of this terminal. Lookups go
// against the credential directory; the current session fields are mirrored
// into the durable store on every change.
type AuthService struct {
	creds   repository.Credentials
	kv      repository.KV
	history interface{ Reset() }

	mu      sync.Mutex
	session models.Session
}

func NewAuthService(creds repository.Credentials, kv repository.KV, history interface{ Reset() }) *AuthService {
	return &AuthService{creds: creds, kv: kv, history: history}
}

// Restore reads the persisted session fields at startup. LoggedIn stays
// false: login is always an explicit action on this terminal.
func (s *AuthService) Restore(ctx context.Context) error {
	var sess models.Session
	for _, f := range []struct {
		key string
		dst *string
	}{
		{repository.KeyName, &sess.Name},
		{repository.KeyRole, &sess.Role},
		{repository.KeyPin, &sess.Pin},
	} {
		v, ok, err := s.kv.Get(ctx, f.key)
		if err != nil {
			return fmt.Errorf("restore session %q: %w", f.key, err)
		}
		if ok {
			*f.dst = v
		}
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	return nil
}

// Login matches pin against the directory. On success the session is set and
// exactly {name, role, pin} are persisted; on no match nothing changes and
// ErrInvalidCredential is returned. Pins are compared in clear text and there
// is no lockout; both are deliberate (see DESIGN.md).
func (s *AuthService) Login(ctx context.Context, pin string) (models.Session, string, error) {
	d, err := s.creds.GetByPin(ctx, pin)
	if err != nil {
		return models.Session{}, "", fmt.Errorf("credential lookup: %w", err)
	}
	if d == nil {
		return models.Session{}, "", ErrInvalidCredential
	}

	role := models.RoleUser
	if d.Admin {
		role = models.RoleAdmin
	}
	sess := models.Session{Pin: d.Pin, Name: d.Name, Role: role, LoggedIn: true}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	// Durable writes follow the in-memory assignment; a failure is surfaced
	// but not rolled back.
	for _, kvp := range []struct{ key, val string }{
		{repository.KeyName, sess.Name},
		{repository.KeyRole, sess.Role},
		{repository.KeyPin, sess.Pin},
	} {
		if err := s.kv.Set(ctx, kvp.key, kvp.val); err != nil {
			return sess, "", fmt.Errorf("persist session %q: %w", kvp.key, err)
		}
	}

	token, err := s.issueToken(sess)
	if err != nil {
		return sess, "", fmt.Errorf("issue token: %w", err)
	}
	return sess, token, nil
}

// Logout clears the in-memory session and wipes the entire durable store —
// status and history included, so the next load starts from defaults.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = models.Session{}
	s.mu.Unlock()

	s.history.Reset()
	return s.kv.Clear(ctx)
}

// ChangePin rewrites the acting identity's own directory entry. The update is
// keyed by actingPin, never by position in the directory.
func (s *AuthService) ChangePin(ctx context.Context, actingPin, newPin string) error {
	if utf8.RuneCountInString(newPin) < minPinLen {
		return ErrPinTooShort
	}

	if err := s.creds.UpdatePin(ctx, actingPin, newPin); err != nil {
		return fmt.Errorf("update pin: %w", err)
	}

	s.mu.Lock()
	if s.session.Pin == actingPin {
		s.session.Pin = newPin
	}
	s.mu.Unlock()

	if err := s.kv.Set(ctx, repository.KeyPin, newPin); err != nil {
		return fmt.Errorf("persist pin: %w", err)
	}
	return nil
}

// Drivers returns the whole credential directory for the admin view.
func (s *AuthService) Drivers(ctx context.Context) ([]models.Driver, error) {
	return s.creds.List(ctx)
}

// Current returns a copy of the session.
func (s *AuthService) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Claims defines the JWT claims carried by API bearer tokens.
type Claims struct {
	jwt.RegisteredClaims
	Pin  string `json:"pin"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// ParseToken parses a bearer token and returns its claims.
func (s *AuthService) ParseToken(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(signingKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// issueToken signs a token for the freshly logged-in session.
func (s *AuthService) issueToken(sess models.Session) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Pin:  sess.Pin,
		Name: sess.Name,
		Role: sess.Role,
	})
	return token.SignedString([]byte(signingKey))
}
