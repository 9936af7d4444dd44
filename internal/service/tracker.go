package service

import (
	"context"
	"time"

	"taxi_dispatch/internal/logger"
	"taxi_dispatch/internal/models"
	"taxi_dispatch/internal/position"
)

// User-facing transient messages, matching the terminal's locale.
const (
	msgLocationFailed = "Sijainnin hakeminen epäonnistui: "
	msgHistoryFailed  = "Sijaintihistorian tallennus epäonnistui: "
)

type historyAppender interface {
	Append(ctx context.Context, e models.HistoryEntry) error
}

type stateRecorder interface {
	SetPosition(p models.Position)
	SetLastError(msg string)
	ClearTransient()
}

// TrackerService owns the position subscription: it watches the source while
// an operator is logged in and turns every fix into a history entry. The
// status written into each entry is read from the authoritative store at
// event-processing time, so a status change never requires resubscribing.
type TrackerService struct {
	source  position.Source
	session sessionReader
	status  statusReader
	history historyAppender
	state   stateRecorder
	log     *logger.Logger

	handle string // owned by the Run goroutine
}

func NewTrackerService(source position.Source, session sessionReader, status statusReader,
	history historyAppender, state stateRecorder, log *logger.Logger) *TrackerService {
	return &TrackerService{
		source:  source,
		session: session,
		status:  status,
		history: history,
		state:   state,
		log:     log,
	}
}

// Run polls the session at the given interval and keeps the subscription in
// step with it: subscribe on login, unsubscribe on logout or ctx cancel,
// whichever comes first.
func (s *TrackerService) Run(ctx context.Context, poll time.Duration) {
	t := time.NewTicker(poll)
	defer t.Stop()
	defer s.unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sync(ctx)
		}
	}
}

func (s *TrackerService) sync(ctx context.Context) {
	loggedIn := s.session.Current().LoggedIn
	switch {
	case loggedIn && s.handle == "":
		s.handle = s.source.Watch(
			func(f position.Fix) { s.handleFix(ctx, f) },
			s.handleError,
		)
		if s.log != nil {
			s.log.Infow("tracker_subscribed", "handle", s.handle)
		}
	case !loggedIn && s.handle != "":
		s.unsubscribe()
		s.state.ClearTransient()
	}
}

func (s *TrackerService) unsubscribe() {
	if s.handle == "" {
		return
	}
	s.source.Unwatch(s.handle)
	if s.log != nil {
		s.log.Infow("tracker_unsubscribed", "handle", s.handle)
	}
	s.handle = ""
}

// handleFix runs on the source goroutine. A fix that races past logout is
// dropped here; unsubscription itself happens on the next poll tick.
func (s *TrackerService) handleFix(ctx context.Context, f position.Fix) {
	if !s.session.Current().LoggedIn {
		return
	}

	label, err := s.status.CurrentStatus(ctx)
	if err != nil {
		// fall back to the default label rather than dropping the fix
		label = models.DefaultStatus
		if s.log != nil {
			s.log.Errorw("tracker_status_read_failed", "err", err)
		}
	}

	pos := models.Position{Lat: f.Lat, Lng: f.Lng}
	s.state.SetPosition(pos)

	entry := models.NewHistoryEntry(time.Now(), pos, label)
	if err := s.history.Append(ctx, entry); err != nil {
		// Storage failures are surfaced, not swallowed.
		s.state.SetLastError(msgHistoryFailed + err.Error())
		if s.log != nil {
			s.log.Errorw("tracker_history_append_failed", "err", err)
		}
	}
}

func (s *TrackerService) handleError(err error) {
	s.state.SetLastError(msgLocationFailed + err.Error())
	if s.log != nil {
		s.log.Infow("tracker_source_error", "err", err)
	}
}
