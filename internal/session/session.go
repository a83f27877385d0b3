package session

import (
	"time"

	"github.com/SakethSumanBathini/scam-shield-api/internal/extraction"
)

// Status of a session's lifecycle.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusTimeout   Status = "TIMEOUT"
)

// Sender labels for conversation messages.
const (
	SenderScammer = "scammer"
	SenderAgent   = "user"
)

// Message is one turn of a conversation. Timestamp is unix
// milliseconds, matching the wire format.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// Session accumulates the state of one engagement with a scammer.
// All mutation happens under the store's per-session lock.
type Session struct {
	SessionID    string         `json:"sessionId"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Status       Status         `json:"status"`
	ScamDetected bool           `json:"scamDetected"`
	ScamCategory *string        `json:"scamCategory"`
	ThreatLevel  string         `json:"threatLevel"`
	Confidence   float64        `json:"confidence"`
	Messages     []Message      `json:"messages"`
	Intelligence extraction.Set `json:"intelligence"`
	Persona      string         `json:"persona"`
	ReportSent   bool           `json:"reportSent"`
}

// Clone returns a deep copy safe to read without the session lock.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Messages = append([]Message(nil), s.Messages...)
	cp.Intelligence = s.Intelligence.Clone()
	if s.ScamCategory != nil {
		category := *s.ScamCategory
		cp.ScamCategory = &category
	}
	return &cp
}

// ScammerText concatenates the text of every scammer-sent message, for
// sentiment analysis over the whole conversation.
func (s *Session) ScammerText() []string {
	var texts []string
	for _, m := range s.Messages {
		if m.Sender == SenderScammer {
			texts = append(texts, m.Text)
		}
	}
	return texts
}

// MessageTexts returns the text of every message in order.
func (s *Session) MessageTexts() []string {
	texts := make([]string, len(s.Messages))
	for i, m := range s.Messages {
		texts[i] = m.Text
	}
	return texts
}
