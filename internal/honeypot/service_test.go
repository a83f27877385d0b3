package honeypot

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SakethSumanBathini/scam-shield-api/internal/actor"
	"github.com/SakethSumanBathini/scam-shield-api/internal/analytics"
	"github.com/SakethSumanBathini/scam-shield-api/internal/conversation"
	"github.com/SakethSumanBathini/scam-shield-api/internal/extraction"
	"github.com/SakethSumanBathini/scam-shield-api/internal/intel"
	"github.com/SakethSumanBathini/scam-shield-api/internal/report"
	"github.com/SakethSumanBathini/scam-shield-api/internal/session"
)

type testSink struct {
	srv      *httptest.Server
	count    atomic.Int32
	mu       sync.Mutex
	payloads []report.Payload
}

func newTestSink(t *testing.T) *testSink {
	sink := &testSink{}
	sink.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p report.Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err == nil {
			sink.mu.Lock()
			sink.payloads = append(sink.payloads, p)
			sink.mu.Unlock()
		}
		sink.count.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(sink.srv.Close)
	return sink
}

func newTestService(t *testing.T, sinkURL string) *Service {
	engine := conversation.NewEngine(nil, 0, nil, rand.New(rand.NewSource(7)))
	dispatcher := report.NewDispatcher(sinkURL, time.Second, nil)
	return NewService(
		session.NewStore(),
		engine,
		dispatcher,
		actor.NewProfiler(nil),
		intel.NewLog(nil),
		analytics.New(),
		Options{Rand: rand.New(rand.NewSource(7))},
	)
}

func scamRequest(sessionID, text string) Request {
	return Request{
		SessionID: sessionID,
		Message:   IncomingMessage{Sender: "scammer", Text: text, Timestamp: time.Now().UnixMilli()},
	}
}

func TestHandleMessageNewSession(t *testing.T) {
	svc := newTestService(t, "")

	resp, err := svc.HandleMessage(context.Background(),
		scamRequest("s1", "URGENT: your account is blocked, share your OTP to verify"))
	require.NoError(t, err)

	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.Reply)
	require.NotNil(t, resp.Analysis)
	assert.True(t, resp.Analysis.ScamDetected)
	require.NotNil(t, resp.ConversationMetrics)
	// One scammer message plus one decoy reply.
	assert.Equal(t, 2, resp.ConversationMetrics.MessageCount)
	require.NotNil(t, resp.AgentState)
	assert.Equal(t, "ACTIVE", resp.AgentState.SessionStatus)
	assert.NotEmpty(t, resp.AgentState.PersonaName)

	assert.Equal(t, 1, svc.Stats().Snapshot().TotalSessions)
}

func TestHandleMessageValidation(t *testing.T) {
	svc := newTestService(t, "")

	_, err := svc.HandleMessage(context.Background(), Request{SessionID: "", Message: IncomingMessage{Text: "hi"}})
	assert.Error(t, err)

	_, err = svc.HandleMessage(context.Background(), Request{SessionID: "s1", Message: IncomingMessage{Text: "  "}})
	assert.Error(t, err)
}

func TestHandleMessageAccumulatesIntelligence(t *testing.T) {
	svc := newTestService(t, "")

	_, err := svc.HandleMessage(context.Background(), scamRequest("s1", "call 9876543210"))
	require.NoError(t, err)
	resp, err := svc.HandleMessage(context.Background(), scamRequest("s1", "or pay to fraud@ybl, call 9876543210"))
	require.NoError(t, err)

	assert.Equal(t, []string{"9876543210"}, resp.ExtractedIntelligence[extraction.KindPhoneNumbers])
	assert.Equal(t, []string{"fraud@ybl"}, resp.ExtractedIntelligence[extraction.KindUPIIDs])

	// The global log keeps every sighting, the session set deduplicates.
	assert.Equal(t, 2, len(svc.IntelLog().Search("9876543210", "", 0)))
}

func TestSessionCompletesAfterThreshold(t *testing.T) {
	sink := newTestSink(t)
	svc := newTestService(t, sink.srv.URL)

	var last Response
	for i := 0; i < 5; i++ {
		var err error
		last, err = svc.HandleMessage(context.Background(),
			scamRequest("s1", "urgent: account blocked, share otp and pay to fraud@ybl now"))
		require.NoError(t, err)
	}

	// 5 exchanges = 10 messages.
	assert.Equal(t, "COMPLETED", last.AgentState.SessionStatus)

	svc.Wait()
	assert.Equal(t, int32(1), sink.count.Load())

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.payloads, 1)
	assert.Equal(t, "s1", sink.payloads[0].SessionID)
	assert.True(t, sink.payloads[0].ScamDetected)
	assert.Contains(t, sink.payloads[0].ExtractedIntelligence.UPIIDs, "fraud@ybl")
	assert.Equal(t, 10, sink.payloads[0].TotalMessagesExchanged)
}

func TestReportSentExactlyOnce(t *testing.T) {
	sink := newTestSink(t)
	svc := newTestService(t, sink.srv.URL)

	for i := 0; i < 7; i++ {
		_, err := svc.HandleMessage(context.Background(),
			scamRequest("s1", "urgent: account blocked, share otp now"))
		require.NoError(t, err)
	}
	_, err := svc.End(context.Background(), "s1")
	require.NoError(t, err)
	_, err = svc.End(context.Background(), "s1")
	require.NoError(t, err)

	svc.Wait()
	assert.Equal(t, int32(1), sink.count.Load())
}

func TestEndWithoutScamSendsNoReport(t *testing.T) {
	sink := newTestSink(t)
	svc := newTestService(t, sink.srv.URL)

	_, err := svc.HandleMessage(context.Background(), scamRequest("s1", "hello, good morning"))
	require.NoError(t, err)

	sess, err := svc.End(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, session.StatusCompleted, sess.Status)

	svc.Wait()
	assert.Equal(t, int32(0), sink.count.Load())
}

func TestEndUnknownSession(t *testing.T) {
	svc := newTestService(t, "")

	_, err := svc.End(context.Background(), "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestEndFeedsActorProfiler(t *testing.T) {
	sink := newTestSink(t)
	svc := newTestService(t, sink.srv.URL)

	_, err := svc.HandleMessage(context.Background(),
		scamRequest("s1", "urgent: account blocked, share otp, call 9123456780"))
	require.NoError(t, err)
	_, err = svc.End(context.Background(), "s1")
	require.NoError(t, err)

	profile, ok := svc.Profiler().Get("9123456780")
	require.True(t, ok)
	assert.Equal(t, 1, profile.TotalSessions)
	assert.NotEmpty(t, profile.ScamTypes)
}

func TestExpireIdle(t *testing.T) {
	sink := newTestSink(t)
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	engine := conversation.NewEngine(nil, 0, nil, rand.New(rand.NewSource(7)))
	svc := NewService(
		session.NewStore(),
		engine,
		report.NewDispatcher(sink.srv.URL, time.Second, nil),
		actor.NewProfiler(nil),
		intel.NewLog(nil),
		analytics.New(),
		Options{
			SessionTimeout: 10 * time.Minute,
			Rand:           rand.New(rand.NewSource(7)),
			Now:            func() time.Time { return current },
		},
	)

	_, err := svc.HandleMessage(context.Background(), scamRequest("s1", "urgent: account blocked, share otp"))
	require.NoError(t, err)

	// Not yet idle.
	current = current.Add(5 * time.Minute)
	assert.Zero(t, svc.ExpireIdle(context.Background()))

	current = current.Add(20 * time.Minute)
	assert.Equal(t, 1, svc.ExpireIdle(context.Background()))

	sess, err := svc.Store().Get("s1")
	require.NoError(t, err)
	assert.Equal(t, session.StatusTimeout, sess.Status)

	svc.Wait()
	assert.Equal(t, int32(1), sink.count.Load())
}

func TestConfidenceIsMonotonicWithinSession(t *testing.T) {
	svc := newTestService(t, "")

	first, err := svc.HandleMessage(context.Background(),
		scamRequest("s1", "urgent: your account is blocked, verify otp now"))
	require.NoError(t, err)

	second, err := svc.HandleMessage(context.Background(), scamRequest("s1", "ok?"))
	require.NoError(t, err)

	firstSess, _ := svc.Store().Get("s1")
	assert.GreaterOrEqual(t, firstSess.Confidence, first.Analysis.ConfidenceScore)
	_ = second
}

func TestConcurrentSessionsDoNotInterfere(t *testing.T) {
	svc := newTestService(t, "")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		id := string(rune('a' + i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 3; j++ {
				_, err := svc.HandleMessage(context.Background(),
					scamRequest(id, "urgent: share otp, account blocked"))
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, svc.Store().Len())
	for i := 0; i < 8; i++ {
		sess, err := svc.Store().Get(string(rune('a' + i)))
		require.NoError(t, err)
		assert.Len(t, sess.Messages, 6)
	}
}

func TestHandleMessageHydratesPriorHistory(t *testing.T) {
	svc := newTestService(t, "")

	req := scamRequest("s-resume", "share your otp now, account blocked")
	req.ConversationHistory = []IncomingMessage{
		{Sender: "scammer", Text: "hello, I am calling from your bank", Timestamp: 1},
		{Sender: "user", Text: "who is this?", Timestamp: 2},
	}
	resp, err := svc.HandleMessage(context.Background(), req)
	require.NoError(t, err)

	sess, err := svc.Store().Get("s-resume")
	require.NoError(t, err)
	// 2 hydrated + scammer turn + agent reply
	require.Len(t, sess.Messages, 4)
	assert.Equal(t, "hello, I am calling from your bank", sess.Messages[0].Text)
	assert.Equal(t, session.SenderScammer, sess.Messages[0].Sender)
	assert.Equal(t, session.SenderAgent, sess.Messages[1].Sender)
	assert.Equal(t, 4, resp.ConversationMetrics.MessageCount)

	// History is only hydrated into brand-new sessions.
	_, err = svc.HandleMessage(context.Background(), req)
	require.NoError(t, err)
	sess, _ = svc.Store().Get("s-resume")
	assert.Len(t, sess.Messages, 6)
}
