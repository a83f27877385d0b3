package honeypot

import (
	"errors"
	"strings"

	"github.com/SakethSumanBathini/scam-shield-api/internal/detection"
	"github.com/SakethSumanBathini/scam-shield-api/internal/extraction"
)

// Metadata describes the channel a message arrived on.
type Metadata struct {
	Channel  string `json:"channel"`
	Language string `json:"language"`
	Locale   string `json:"locale"`
}

// IncomingMessage is one message on the wire. Timestamp is unix
// milliseconds.
type IncomingMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// Request is the honeypot message-processing request body.
type Request struct {
	SessionID           string            `json:"sessionId"`
	Message             IncomingMessage   `json:"message"`
	ConversationHistory []IncomingMessage `json:"conversationHistory"`
	Metadata            *Metadata         `json:"metadata"`
}

// Validate checks the request's required fields.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.SessionID) == "" {
		return errors.New("honeypot: sessionId is required")
	}
	if strings.TrimSpace(r.Message.Text) == "" {
		return errors.New("honeypot: message text is required")
	}
	return nil
}

// ConversationMetrics summarizes a session's progress.
type ConversationMetrics struct {
	MessageCount      int `json:"messageCount"`
	SessionDuration   int `json:"sessionDuration"`
	IntelligenceCount int `json:"intelligenceCount"`
}

// AgentState describes the decoy character in play.
type AgentState struct {
	Persona       string `json:"persona"`
	PersonaName   string `json:"personaName"`
	SessionStatus string `json:"sessionStatus"`
}

// Response is the full honeypot response body.
type Response struct {
	Status                string               `json:"status"`
	Reply                 string               `json:"reply"`
	Analysis              *detection.Result    `json:"analysis,omitempty"`
	ExtractedIntelligence extraction.Set       `json:"extractedIntelligence,omitempty"`
	ConversationMetrics   *ConversationMetrics `json:"conversationMetrics,omitempty"`
	AgentState            *AgentState          `json:"agentState,omitempty"`
}

// MinimalResponse is the reduced response shape for integrations that
// only need the reply text.
type MinimalResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}
