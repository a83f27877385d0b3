// Package report delivers the final intelligence summary of a finished
// engagement to the configured callback sink.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/SakethSumanBathini/scam-shield-api/internal/extraction"
	"github.com/SakethSumanBathini/scam-shield-api/internal/session"
	"github.com/SakethSumanBathini/scam-shield-api/pkg/logging"
)

// Intelligence is the artifact subset included in the callback payload.
type Intelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// Payload is the callback body for one finished session.
type Payload struct {
	SessionID              string       `json:"sessionId"`
	ScamDetected           bool         `json:"scamDetected"`
	TotalMessagesExchanged int          `json:"totalMessagesExchanged"`
	ExtractedIntelligence  Intelligence `json:"extractedIntelligence"`
	AgentNotes             string       `json:"agentNotes"`
}

// Dispatcher posts session reports. A zero callback URL disables it.
type Dispatcher struct {
	url    string
	client *http.Client
	logger *logging.Logger
	tracer trace.Tracer
}

// NewDispatcher creates a dispatcher posting to url with the given
// timeout per delivery.
func NewDispatcher(url string, timeout time.Duration, logger *logging.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger.WithComponent("report"),
		tracer: otel.Tracer("scamshield.internal.report"),
	}
}

// Enabled reports whether a callback URL is configured.
func (d *Dispatcher) Enabled() bool {
	return d.url != ""
}

// BuildPayload assembles the callback body from a session snapshot.
func BuildPayload(sess *session.Session) Payload {
	category := "Unknown"
	if sess.ScamCategory != nil {
		category = *sess.ScamCategory
	}
	threat := sess.ThreatLevel
	if threat == "" {
		threat = "Unknown"
	}

	return Payload{
		SessionID:              sess.SessionID,
		ScamDetected:           sess.ScamDetected,
		TotalMessagesExchanged: len(sess.Messages),
		ExtractedIntelligence: Intelligence{
			BankAccounts:       nonNil(sess.Intelligence[extraction.KindBankAccounts]),
			UPIIDs:             nonNil(sess.Intelligence[extraction.KindUPIIDs]),
			PhishingLinks:      nonNil(sess.Intelligence[extraction.KindPhishingLinks]),
			PhoneNumbers:       nonNil(sess.Intelligence[extraction.KindPhoneNumbers]),
			SuspiciousKeywords: nonNil(sess.Intelligence[extraction.KindSuspiciousTerm]),
		},
		AgentNotes: fmt.Sprintf("Category: %s, Threat: %s, Confidence: %v", category, threat, sess.Confidence),
	}
}

// Send delivers the payload. Failures are logged, not retried; the
// caller's exactly-once bookkeeping is independent of delivery outcome.
func (d *Dispatcher) Send(ctx context.Context, payload Payload) error {
	ctx, span := d.tracer.Start(ctx, "report.send")
	defer span.End()

	if !d.Enabled() {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("report: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("report: failed to build request: %w", err)
	}
	deliveryID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-ID", deliveryID)

	resp, err := d.client.Do(req)
	if err != nil {
		span.RecordError(err)
		d.logger.Warn("report delivery failed", "sessionId", payload.SessionID, "deliveryId", deliveryID, "error", err)
		return fmt.Errorf("report: delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("report: sink returned status %d", resp.StatusCode)
		span.RecordError(err)
		d.logger.Warn("report rejected by sink", "sessionId", payload.SessionID, "deliveryId", deliveryID, "status", resp.StatusCode)
		return err
	}

	d.logger.Info("report delivered",
		"sessionId", payload.SessionID,
		"deliveryId", deliveryID,
		"messages", payload.TotalMessagesExchanged,
	)
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
