package service

import (
	"context"
	"errors"
	"fmt"

	"taxi_dispatch/internal/models"
	"taxi_dispatch/internal/repository"
)

// ErrUnknownStatus is returned for labels outside the fixed option set.
var ErrUnknownStatus = errors.New("unknown status label")

// AvailabilityService owns the driver's availability label. The durable store
// is the authoritative copy; reads always go through it so every consumer —
// the tracker in particular — sees the label in effect right now.
type AvailabilityService struct {
	kv repository.KV
}

func NewAvailabilityService(kv repository.KV) *AvailabilityService {
	return &AvailabilityService{kv: kv}
}

// SetStatus validates the label against the fixed set and persists it
// immediately.
func (s *AvailabilityService) SetStatus(ctx context.Context, label string) error {
	if !models.ValidStatus(label) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, label)
	}
	return s.kv.Set(ctx, repository.KeyStatus, label)
}

// CurrentStatus returns the persisted label, defaulting when absent (fresh
// install or post-logout wipe).
func (s *AvailabilityService) CurrentStatus(ctx context.Context) (string, error) {
	v, ok, err := s.kv.Get(ctx, repository.KeyStatus)
	if err != nil {
		return "", fmt.Errorf("read status: %w", err)
	}
	if !ok {
		return models.DefaultStatus, nil
	}
	return v, nil
}

// Options returns the fixed label/color set for the client's buttons.
func (s *AvailabilityService) Options() []models.StatusOption {
	return models.StatusOptions()
}
