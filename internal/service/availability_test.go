package service

import (
	"context"
	"errors"
	"testing"

	"taxi_dispatch/internal/models"
	"taxi_dispatch/internal/repository"
)

func TestAvailabilityService_SetStatus_PersistsImmediately(t *testing.T) {
	kv := newFakeKV()
	svc := NewAvailabilityService(kv)

	if err := svc.SetStatus(context.Background(), models.StatusOnTrip); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got, ok := kv.get(repository.KeyStatus); !ok || got != models.StatusOnTrip {
		t.Fatalf("kv status: got (%q, %v), want %q", got, ok, models.StatusOnTrip)
	}
}

func TestAvailabilityService_SetStatus_RejectsUnknownLabel(t *testing.T) {
	kv := newFakeKV()
	svc := NewAvailabilityService(kv)

	err := svc.SetStatus(context.Background(), "Tauolla")
	if !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
	if kv.setCalls != 0 {
		t.Fatalf("rejected label must not be persisted")
	}
}

func TestAvailabilityService_CurrentStatus_DefaultsWhenAbsent(t *testing.T) {
	svc := NewAvailabilityService(newFakeKV())

	got, err := svc.CurrentStatus(context.Background())
	if err != nil {
		t.Fatalf("CurrentStatus: %v", err)
	}
	if got != models.DefaultStatus {
		t.Fatalf("got %q, want default %q", got, models.DefaultStatus)
	}
}

func TestAvailabilityService_CurrentStatus_ReadsPersisted(t *testing.T) {
	kv := newFakeKV()
	_ = kv.Set(context.Background(), repository.KeyStatus, models.StatusOffDuty)
	svc := NewAvailabilityService(kv)

	got, err := svc.CurrentStatus(context.Background())
	if err != nil {
		t.Fatalf("CurrentStatus: %v", err)
	}
	if got != models.StatusOffDuty {
		t.Fatalf("got %q, want %q", got, models.StatusOffDuty)
	}
}

func TestAvailabilityService_Options_FixedSet(t *testing.T) {
	svc := NewAvailabilityService(newFakeKV())

	opts := svc.Options()
	want := []models.StatusOption{
		{Label: "Vapaa", Color: "green"},
		{Label: "Ajossa", Color: "red"},
		{Label: "Ei käytössä", Color: "black"},
	}
	if len(opts) != len(want) {
		t.Fatalf("got %d options, want %d", len(opts), len(want))
	}
	for i := range want {
		if opts[i] != want[i] {
			t.Fatalf("option %d: got %+v, want %+v", i, opts[i], want[i])
		}
	}
}
