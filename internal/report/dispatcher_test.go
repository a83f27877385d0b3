package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SakethSumanBathini/scam-shield-api/internal/extraction"
	"github.com/SakethSumanBathini/scam-shield-api/internal/session"
)

func sampleSession() *session.Session {
	category := "BANKING_FRAUD"
	return &session.Session{
		SessionID:    "s1",
		Status:       session.StatusCompleted,
		ScamDetected: true,
		ScamCategory: &category,
		ThreatLevel:  "HIGH",
		Confidence:   0.82,
		Messages: []session.Message{
			{Sender: session.SenderScammer, Text: "share otp"},
			{Sender: session.SenderAgent, Text: "what is otp beta?"},
		},
		Intelligence: extraction.Set{
			extraction.KindPhoneNumbers:   {"9876543210"},
			extraction.KindUPIIDs:         {"fraud@ybl"},
			extraction.KindSuspiciousTerm: {"otp"},
		},
	}
}

func TestBuildPayload(t *testing.T) {
	payload := BuildPayload(sampleSession())

	assert.Equal(t, "s1", payload.SessionID)
	assert.True(t, payload.ScamDetected)
	assert.Equal(t, 2, payload.TotalMessagesExchanged)
	assert.Equal(t, []string{"9876543210"}, payload.ExtractedIntelligence.PhoneNumbers)
	assert.Equal(t, []string{"fraud@ybl"}, payload.ExtractedIntelligence.UPIIDs)
	// Kinds with nothing extracted serialize as empty arrays, not null.
	assert.NotNil(t, payload.ExtractedIntelligence.BankAccounts)
	assert.Empty(t, payload.ExtractedIntelligence.BankAccounts)
	assert.Equal(t, "Category: BANKING_FRAUD, Threat: HIGH, Confidence: 0.82", payload.AgentNotes)
}

func TestBuildPayloadUnclassified(t *testing.T) {
	sess := sampleSession()
	sess.ScamCategory = nil
	sess.ThreatLevel = ""

	payload := BuildPayload(sess)
	assert.Equal(t, "Category: Unknown, Threat: Unknown, Confidence: 0.82", payload.AgentNotes)
}

func TestDispatcherSend(t *testing.T) {
	var received Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, time.Second, nil)
	require.True(t, d.Enabled())

	err := d.Send(context.Background(), BuildPayload(sampleSession()))
	require.NoError(t, err)
	assert.Equal(t, "s1", received.SessionID)
	assert.Equal(t, []string{"otp"}, received.ExtractedIntelligence.SuspiciousKeywords)
}

func TestDispatcherSendNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, time.Second, nil)
	err := d.Send(context.Background(), BuildPayload(sampleSession()))
	assert.Error(t, err)
}

func TestDispatcherDisabled(t *testing.T) {
	d := NewDispatcher("", time.Second, nil)

	assert.False(t, d.Enabled())
	assert.NoError(t, d.Send(context.Background(), BuildPayload(sampleSession())))
}
