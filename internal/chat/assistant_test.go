package chat

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/neighborhood-insights/internal/domain"
	"github.com/couchcryptid/neighborhood-insights/internal/insight"
	"github.com/couchcryptid/neighborhood-insights/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 600 * time.Millisecond

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fullertonResolution() insight.Resolution {
	return insight.Resolution{
		Key:    "Fullerton, CA",
		Found:  true,
		Record: domain.SeedPlaces()["Fullerton, CA"],
	}
}

func newTestAssistant(clk clockwork.Clock) (*Assistant, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	return NewAssistant(clk, testDelay, discardLogger(), metrics), metrics
}

func waitForMessages(t *testing.T, s *Session, n int) []domain.Message {
	t.Helper()
	require.Eventually(t, func() bool { return s.Log.Len() == n }, time.Second, 5*time.Millisecond)
	return s.Log.Messages()
}

func TestAsk_UserMessageThenReply(t *testing.T) {
	clk := clockwork.NewFakeClock()
	a, metrics := newTestAssistant(clk)
	s := NewSession()
	s.Select("Fullerton", "CA", fullertonResolution())

	a.Ask(s, "Is it good for families?")

	msgs := s.Log.Messages()
	require.Len(t, msgs, 1, "reply must wait for the delay")
	assert.Equal(t, domain.SpeakerUser, msgs[0].Speaker)
	assert.True(t, s.Pending())

	clk.Advance(testDelay)
	msgs = waitForMessages(t, s, 2)

	assert.Equal(t, domain.SpeakerUser, msgs[0].Speaker)
	assert.Equal(t, "Is it good for families?", msgs[0].Text)
	assert.Equal(t, domain.SpeakerAssistant, msgs[1].Speaker)
	rec := domain.SeedPlaces()["Fullerton, CA"]
	assert.Equal(t, domain.Compose("Fullerton, CA", &rec), msgs[1].Text)
	assert.False(t, s.Pending())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Replies.WithLabelValues("delivered")))
}

func TestAsk_NoPlaceSelected(t *testing.T) {
	clk := clockwork.NewFakeClock()
	a, _ := newTestAssistant(clk)
	s := NewSession()

	a.Ask(s, "What about schools?")
	clk.Advance(testDelay)

	msgs := waitForMessages(t, s, 2)
	assert.Equal(t, domain.UnresolvedPlaceMessage, msgs[1].Text)
}

func TestAsk_ReplyIgnoresQuestionText(t *testing.T) {
	a := NewAssistant(clockwork.NewFakeClock(), 0, discardLogger(), observability.NewMetricsForTesting())
	s := NewSession()
	s.Select("Fullerton", "CA", fullertonResolution())

	a.Ask(s, "schools?")
	a.Ask(s, "anything about parking?")

	msgs := s.Log.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, msgs[1].Text, msgs[3].Text)
}

func TestAsk_ZeroDelayRepliesImmediately(t *testing.T) {
	a := NewAssistant(clockwork.NewFakeClock(), 0, discardLogger(), observability.NewMetricsForTesting())
	s := NewSession()

	a.Ask(s, "hi")

	msgs := s.Log.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.SpeakerAssistant, msgs[1].Speaker)
	assert.False(t, s.Pending())
}

func TestAsk_NewQuestionCancelsPendingReply(t *testing.T) {
	clk := clockwork.NewFakeClock()
	a, metrics := newTestAssistant(clk)
	s := NewSession()
	s.Select("Fullerton", "CA", fullertonResolution())

	a.Ask(s, "first")
	clk.Advance(testDelay / 2)
	a.Ask(s, "second")
	clk.Advance(testDelay)

	msgs := waitForMessages(t, s, 3)
	assert.Equal(t, "first", msgs[0].Text)
	assert.Equal(t, "second", msgs[1].Text)
	assert.Equal(t, domain.SpeakerAssistant, msgs[2].Speaker)

	// The superseded timer never delivers.
	clk.Advance(testDelay)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 3, s.Log.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Replies.WithLabelValues("cancelled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Replies.WithLabelValues("delivered")))
}

func TestCancel(t *testing.T) {
	clk := clockwork.NewFakeClock()
	a, _ := newTestAssistant(clk)
	s := NewSession()

	assert.False(t, a.Cancel(s), "nothing pending")

	a.Ask(s, "question")
	assert.True(t, a.Cancel(s))
	assert.False(t, s.Pending())

	clk.Advance(2 * testDelay)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, s.Log.Len())
}

func TestAsk_ReplyUsesPlaceAtAskTime(t *testing.T) {
	clk := clockwork.NewFakeClock()
	a, _ := newTestAssistant(clk)
	s := NewSession()
	s.Select("Fullerton", "CA", fullertonResolution())

	a.Ask(s, "how is it?")
	s.Select("Nowhere", "ZZ", insight.Resolution{Key: "Nowhere, ZZ"})
	clk.Advance(testDelay)

	msgs := waitForMessages(t, s, 2)
	assert.Contains(t, msgs[1].Text, "Fullerton, CA")
}

func TestSessions(t *testing.T) {
	reg := NewSessions()
	s := reg.Create()
	require.NotEmpty(t, s.ID)

	got, ok := reg.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestSession_Select(t *testing.T) {
	s := NewSession()
	s.Select("Fullerton", "CA", fullertonResolution())

	city, region := s.Selection()
	assert.Equal(t, "Fullerton", city)
	assert.Equal(t, "CA", region)
	assert.True(t, s.Resolution().Found)

	s.Select("Nowhere", "ZZ", insight.Resolution{Key: "Nowhere, ZZ"})
	assert.False(t, s.Resolution().Found)
	assert.Nil(t, s.Resolution().RecordOrNil())
}
