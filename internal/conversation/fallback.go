package conversation

import (
	"strings"

	"github.com/SakethSumanBathini/scam-shield-api/internal/persona"
)

// contextualClause returns an add-on line reacting to whatever the
// caller's message is pushing for. First match wins: credential
// requests outrank payment talk, which outranks pressure tactics.
func contextualClause(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "otp"):
		return " What is this OTP thing? Is it like a password?"
	case strings.Contains(lower, "upi") || strings.Contains(lower, "payment"):
		return " My grandson handles all the phone payments..."
	case strings.Contains(lower, "urgent") || strings.Contains(lower, "immediate"):
		return " Please don't rush me beta, I'm old and slow..."
	case strings.Contains(lower, "block") || strings.Contains(lower, "suspend"):
		return " Oh no! But I just used my account yesterday!"
	default:
		return ""
	}
}

// RuleBasedReply produces a canned reply without the generator: a
// random line from the persona's current phase bucket plus a clause
// reacting to the message content. pick chooses an index in [0, n).
func RuleBasedReply(p *persona.Persona, message string, messageCount int, pick func(n int) int) string {
	lines := p.Lines(messageCount)
	return lines[pick(len(lines))] + contextualClause(message)
}
