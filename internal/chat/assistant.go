package chat

import (
	"log/slog"
	"time"

	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/couchcryptid/neighborhood-insights/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Assistant answers questions with the composed narrative for the session's
// selected place. It ignores the question text; the same place always gets the
// same reply.
type Assistant struct {
	clock   clockwork.Clock
	delay   time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAssistant creates an Assistant that delivers replies after delay.
func NewAssistant(clock clockwork.Clock, delay time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Assistant {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Assistant{
		clock:   clock,
		delay:   delay,
		logger:  logger,
		metrics: metrics,
	}
}

// Ask appends the user's question to the session log immediately and schedules
// the reply. A reply still pending from an earlier question is discarded, so
// replies always follow the question that produced them.
func (a *Assistant) Ask(s *Session, question string) domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.cancelLocked(s)
	msg := s.Log.Append(domain.SpeakerUser, question)

	reply := domain.Compose(s.resolution.Key, s.resolution.RecordOrNil())
	s.generation++
	gen := s.generation

	if a.delay <= 0 {
		s.Log.Append(domain.SpeakerAssistant, reply)
		a.metrics.Replies.WithLabelValues("delivered").Inc()
		return msg
	}

	s.pending = a.clock.AfterFunc(a.delay, func() { a.deliver(s, gen, reply) })
	a.logger.Debug("reply scheduled", "session", s.ID, "delay", a.delay)
	return msg
}

// Cancel discards the session's pending reply, if any. It reports whether a
// reply was discarded.
func (a *Assistant) Cancel(s *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return a.cancelLocked(s)
}

func (a *Assistant) cancelLocked(s *Session) bool {
	if s.pending == nil {
		return false
	}
	s.pending.Stop()
	s.pending = nil
	// Bumping the generation makes a timer that already fired a no-op.
	s.generation++
	a.metrics.Replies.WithLabelValues("cancelled").Inc()
	a.logger.Debug("pending reply cancelled", "session", s.ID)
	return true
}

func (a *Assistant) deliver(s *Session, gen uint64, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return
	}
	s.pending = nil
	s.Log.Append(domain.SpeakerAssistant, reply)
	a.metrics.Replies.WithLabelValues("delivered").Inc()
}
