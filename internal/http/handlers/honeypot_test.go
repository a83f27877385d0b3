package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SakethSumanBathini/scam-shield-api/internal/actor"
	"github.com/SakethSumanBathini/scam-shield-api/internal/analytics"
	"github.com/SakethSumanBathini/scam-shield-api/internal/conversation"
	"github.com/SakethSumanBathini/scam-shield-api/internal/honeypot"
	"github.com/SakethSumanBathini/scam-shield-api/internal/intel"
	"github.com/SakethSumanBathini/scam-shield-api/internal/report"
	"github.com/SakethSumanBathini/scam-shield-api/internal/session"
)

func newTestHandler(t *testing.T) (*HoneypotHandler, chi.Router) {
	t.Helper()
	engine := conversation.NewEngine(nil, 0, nil, rand.New(rand.NewSource(3)))
	dispatcher := report.NewDispatcher("", time.Second, nil)
	svc := honeypot.NewService(
		session.NewStore(),
		engine,
		dispatcher,
		actor.NewProfiler(nil),
		intel.NewLog(nil),
		analytics.New(),
		honeypot.Options{Rand: rand.New(rand.NewSource(3))},
	)
	h := NewHoneypotHandler(svc, nil, false)

	r := chi.NewRouter()
	r.Get("/", h.Root)
	r.Get("/api/health", h.Health)
	r.Get("/api/stats", h.PublicStats)
	r.Post("/api/honeypot", h.ProcessMessage)
	r.Post("/api/honeypot/minimal", h.ProcessMessageMinimal)
	r.Get("/api/sessions", h.ListSessions)
	r.Get("/api/sessions/{sessionID}", h.GetSession)
	r.Post("/api/sessions/{sessionID}/end", h.EndSession)
	r.Get("/api/intelligence", h.GetIntelligence)
	r.Get("/api/intelligence/search", h.SearchIntelligence)
	r.Get("/api/analytics/dashboard", h.Dashboard)
	r.Get("/api/analytics/detailed", h.DetailedAnalytics)
	r.Post("/api/export/report", h.ExportReport)
	r.Get("/api/sentiment/{sessionID}", h.Sentiment)
	r.Get("/api/scammer-profiles", h.ScammerProfiles)
	r.Get("/api/scammer-profile/{identifier}", h.ScammerProfile)
	return h, r
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func scamMessage(sessionID, text string) honeypot.Request {
	return honeypot.Request{
		SessionID: sessionID,
		Message: honeypot.IncomingMessage{
			Sender:    "scammer",
			Text:      text,
			Timestamp: time.Now().UnixMilli(),
		},
	}
}

func TestRootAndHealth(t *testing.T) {
	_, r := newTestHandler(t)

	rec, body := doJSON(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, serviceVersion, body["version"])

	rec, body = doJSON(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["geminiConnected"])
	assert.EqualValues(t, 0, body["totalSessions"])
}

func TestProcessMessage(t *testing.T) {
	_, r := newTestHandler(t)

	rec, body := doJSON(t, r, http.MethodPost, "/api/honeypot",
		scamMessage("sess-1", "URGENT: your SBI account is blocked, share your OTP now"))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["reply"])
	analysis, ok := body["analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, analysis["scamDetected"])
	assert.NotNil(t, body["agentState"])
}

func TestProcessMessageMinimal(t *testing.T) {
	_, r := newTestHandler(t)

	rec, body := doJSON(t, r, http.MethodPost, "/api/honeypot/minimal",
		scamMessage("sess-min", "hello there"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["reply"])
	assert.NotContains(t, body, "analysis")
}

func TestProcessMessageValidation(t *testing.T) {
	_, r := newTestHandler(t)

	rec, _ := doJSON(t, r, http.MethodPost, "/api/honeypot", scamMessage("", "hi"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, r, http.MethodPost, "/api/honeypot", scamMessage("sess-2", "  "))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/honeypot", bytes.NewBufferString("{not json"))
	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestSessionEndpoints(t *testing.T) {
	_, r := newTestHandler(t)

	doJSON(t, r, http.MethodPost, "/api/honeypot",
		scamMessage("sess-a", "your KYC is expired, verify immediately or account blocked"))

	rec, body := doJSON(t, r, http.MethodGet, "/api/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total"])
	sessions := body["sessions"].([]any)
	first := sessions[0].(map[string]any)
	assert.Equal(t, "sess-a", first["sessionId"])
	assert.Equal(t, "ACTIVE", first["status"])
	assert.NotEmpty(t, first["persona"])

	rec, body = doJSON(t, r, http.MethodGet, "/api/sessions/sess-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sess := body["session"].(map[string]any)
	assert.Equal(t, "sess-a", sess["sessionId"])
	assert.Len(t, sess["messages"], 2)

	rec, _ = doJSON(t, r, http.MethodGet, "/api/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = doJSON(t, r, http.MethodPost, "/api/sessions/sess-a/end", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Session ended", body["message"])
	assert.Equal(t, true, body["callbackSent"])

	rec, _ = doJSON(t, r, http.MethodPost, "/api/sessions/missing/end", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEndCleanSessionReportsNoCallback(t *testing.T) {
	_, r := newTestHandler(t)

	doJSON(t, r, http.MethodPost, "/api/honeypot", scamMessage("sess-clean", "good morning, how are you"))
	rec, body := doJSON(t, r, http.MethodPost, "/api/sessions/sess-clean/end", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["callbackSent"])
}

func TestIntelligenceEndpoints(t *testing.T) {
	_, r := newTestHandler(t)

	doJSON(t, r, http.MethodPost, "/api/honeypot",
		scamMessage("sess-i", "send money to fraud@ybl or call 9876543210 urgently"))

	rec, body := doJSON(t, r, http.MethodGet, "/api/intelligence", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["intelligence"])

	rec, body = doJSON(t, r, http.MethodGet, "/api/intelligence/search?q=fraud", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fraud", body["query"])
	results := body["results"].([]any)
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].(map[string]any)["value"], "fraud@ybl")

	rec, _ = doJSON(t, r, http.MethodGet, "/api/intelligence/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSentimentEndpoint(t *testing.T) {
	_, r := newTestHandler(t)

	doJSON(t, r, http.MethodPost, "/api/honeypot",
		scamMessage("sess-s", "hurry, act immediately or police will arrest you"))

	rec, body := doJSON(t, r, http.MethodGet, "/api/sentiment/sess-s", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := body["sentiment"].(map[string]any)
	assert.NotEmpty(t, profile["dominantEmotion"])
	assert.Greater(t, profile["manipulationLevel"].(float64), 0.0)

	rec, _ = doJSON(t, r, http.MethodGet, "/api/sentiment/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScammerProfileEndpoints(t *testing.T) {
	h, r := newTestHandler(t)

	doJSON(t, r, http.MethodPost, "/api/honeypot",
		scamMessage("sess-p", "pay to scammer@paytm now, your account is blocked, share OTP"))
	doJSON(t, r, http.MethodPost, "/api/sessions/sess-p/end", nil)
	h.service.Wait()

	rec, body := doJSON(t, r, http.MethodGet, "/api/scammer-profiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1, body["total"])
	profiles := body["profiles"].([]any)
	identifier := profiles[0].(map[string]any)["identifier"].(string)

	rec, body = doJSON(t, r, http.MethodGet, "/api/scammer-profile/"+identifier, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, identifier, body["profile"].(map[string]any)["identifier"])

	rec, _ = doJSON(t, r, http.MethodGet, "/api/scammer-profile/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyticsEndpoints(t *testing.T) {
	_, r := newTestHandler(t)

	for i := 0; i < 3; i++ {
		doJSON(t, r, http.MethodPost, "/api/honeypot",
			scamMessage(fmt.Sprintf("sess-%d", i), "your account is blocked, share your OTP to verify KYC"))
	}

	rec, body := doJSON(t, r, http.MethodGet, "/api/analytics/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	totals := body["totals"].(map[string]any)
	assert.EqualValues(t, 3, totals["totalSessions"])
	assert.Equal(t, "100.0%", totals["successRate"])
	realtime := body["realtime"].(map[string]any)
	assert.EqualValues(t, 3, realtime["activeSessions"])
	assert.Len(t, body["recentSessions"], 3)

	rec, body = doJSON(t, r, http.MethodGet, "/api/analytics/detailed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	overview := body["overview"].(map[string]any)
	assert.EqualValues(t, 3, overview["totalSessions"])
	charts := body["charts"].(map[string]any)
	assert.Len(t, charts["sessionsTimeline"], 7)
	assert.NotEmpty(t, charts["categoryDistribution"])
	assert.NotEmpty(t, body["topScamTypes"])
}

func TestExportReport(t *testing.T) {
	_, r := newTestHandler(t)

	doJSON(t, r, http.MethodPost, "/api/honeypot",
		scamMessage("sess-e", "transfer to account 123456789012 immediately"))

	rec, body := doJSON(t, r, http.MethodPost, "/api/export/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 1, summary["totalSessions"])
	assert.Len(t, body["sessions"], 1)
	assert.NotEmpty(t, body["intelligence"])
}

func TestPublicStats(t *testing.T) {
	_, r := newTestHandler(t)

	doJSON(t, r, http.MethodPost, "/api/honeypot",
		scamMessage("sess-x", "share your OTP, your account is blocked"))

	rec, body := doJSON(t, r, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "online", body["status"])
	assert.EqualValues(t, 1, body["totalSessions"])
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "short", truncateID("short"))
	assert.Equal(t, "abcdefghijkl...", truncateID("abcdefghijklmnop"))
}
