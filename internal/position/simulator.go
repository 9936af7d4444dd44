package position

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Simulated is a stand-in GPS receiver: a random walk around a starting
// coordinate, one fix per tick. Each Watch gets its own goroutine; all
// watchers observe the same walk.
type Simulated struct {
	tick time.Duration
	step float64

	mu       sync.Mutex
	lat, lng float64
	watchers map[string]chan struct{}
}

// NewSimulated returns a simulated source starting at (lat, lng), drifting by
// at most step degrees per tick.
func NewSimulated(lat, lng, step float64, tick time.Duration) *Simulated {
	return &Simulated{
		tick:     tick,
		step:     step,
		lat:      lat,
		lng:      lng,
		watchers: make(map[string]chan struct{}),
	}
}

var _ Source = (*Simulated)(nil)

// Watch starts emitting fixes to onFix until Unwatch. The first fix is
// emitted immediately, mirroring how a receiver reports its cached position
// on subscription.
func (s *Simulated) Watch(onFix func(Fix), onErr func(error)) string {
	handle := uuid.NewString()
	stop := make(chan struct{})

	s.mu.Lock()
	s.watchers[handle] = stop
	s.mu.Unlock()

	go s.emitLoop(onFix, stop)
	return handle
}

// Unwatch cancels the subscription. Safe to call with an unknown handle. A
// fix already dispatched when Unwatch runs may still be delivered.
func (s *Simulated) Unwatch(handle string) {
	s.mu.Lock()
	stop, ok := s.watchers[handle]
	if ok {
		delete(s.watchers, handle)
	}
	s.mu.Unlock()
	if ok {
		close(stop)
	}
}

func (s *Simulated) emitLoop(onFix func(Fix), stop <-chan struct{}) {
	onFix(s.advance())

	t := time.NewTicker(s.tick)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			onFix(s.advance())
		}
	}
}

// advance moves the shared walk one step and returns the new fix.
func (s *Simulated) advance() Fix {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lat += (rand.Float64()*2 - 1) * s.step
	s.lng += (rand.Float64()*2 - 1) * s.step
	return Fix{Lat: s.lat, Lng: s.lng}
}
