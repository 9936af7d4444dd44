package service

import (
	"context"
	"errors"
	"sync"

	"taxi_dispatch/internal/models"
	"taxi_dispatch/internal/repository"
)

var errTestWrite = errors.New("disk full")

// fakeKV is an in-memory stand-in for the durable store.
type fakeKV struct {
	mu       sync.Mutex
	data     map[string]string
	getErr   error
	setErr   error
	clearErr error

	setCalls   int
	clearCalls int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.data = make(map[string]string)
	return nil
}

func (f *fakeKV) get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeKV) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data)
}

// fakeDirectory behaves like the sqlite credential directory, seeded the way
// the schema seeds it.
type fakeDirectory struct {
	mu      sync.Mutex
	drivers []models.Driver
	lookErr error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{drivers: []models.Driver{
		{Pin: "1254", Name: "Kuljettaja", Admin: false},
		{Pin: "7956", Name: "Admin", Admin: true},
	}}
}

func (f *fakeDirectory) GetByPin(ctx context.Context, pin string) (*models.Driver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookErr != nil {
		return nil, f.lookErr
	}
	for _, d := range f.drivers {
		if d.Pin == pin {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) UpdatePin(ctx context.Context, currentPin, newPin string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.drivers {
		if f.drivers[i].Pin == currentPin {
			f.drivers[i].Pin = newPin
			return nil
		}
	}
	return repository.ErrNoSuchDriver
}

func (f *fakeDirectory) List(ctx context.Context) ([]models.Driver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Driver, len(f.drivers))
	copy(out, f.drivers)
	return out, nil
}

var _ repository.KV = (*fakeKV)(nil)
var _ repository.Credentials = (*fakeDirectory)(nil)
