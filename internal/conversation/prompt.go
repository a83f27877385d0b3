package conversation

import (
	"fmt"
	"strings"

	"github.com/SakethSumanBathini/scam-shield-api/internal/persona"
)

// Turn is one prior exchange used for prompt context.
type Turn struct {
	// FromScammer marks turns sent by the caller; everything else is
	// the decoy's own reply.
	FromScammer bool
	Text        string
}

// historyWindow limits how many prior turns go into the prompt.
const historyWindow = 6

// BuildPrompt assembles the generation prompt for one reply: character
// brief, scam-type strategy, engagement phase, mood, recent
// conversation and the caller's latest message.
func BuildPrompt(p *persona.Persona, scamType, threatLevel string, messageCount int, mood string, history []Turn, message string) string {
	if scamType == "" {
		scamType = "UNKNOWN"
	}
	strategy := persona.StrategyFor(scamType)
	phase := persona.PhaseFor(messageCount)

	var context strings.Builder
	start := len(history) - historyWindow
	if start < 0 {
		start = 0
	}
	for _, turn := range history[start:] {
		role := "You"
		if turn.FromScammer {
			role = "Scammer"
		}
		fmt.Fprintf(&context, "%s: %s\n", role, turn.Text)
	}

	return fmt.Sprintf(`%s

SITUATION: A scammer has contacted you. Scam type: %s. Threat level: %s.

YOUR STRATEGY FOR THIS SPECIFIC SCAM:
- How to react: %s
- How to trick them: %s
- What to extract: %s

CONVERSATION PHASE: %s

CURRENT MOOD: %s

PREVIOUS CONVERSATION:
%s
SCAMMER'S LATEST MESSAGE: "%s"

RULES:
- Stay COMPLETELY in character as %s
- Response must be 20-50 words
- NEVER break character or reveal you know it's a scam
- Ask exactly ONE question to keep them engaged
- Use your persona's unique speech patterns
- DO NOT repeat anything you already said in the conversation above
- Be CREATIVE - don't give a generic response

Reply ONLY as %s (no quotes, no narration, no stage directions):`,
		p.Voice, scamType, threatLevel,
		strategy.React, strategy.Trick, strategy.Extract,
		phase.PromptDirective(), mood, context.String(), message,
		p.Name, p.Name)
}

// CleanReply strips generation artifacts: surrounding quotes, markdown
// asterisks and any narration prefix the model may add.
func CleanReply(text, personaName string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, `"`, "")
	text = strings.ReplaceAll(text, "*", "")

	prefixes := []string{
		personaName + ":",
		personaName + " :",
		"Reply:",
		"Response:",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
		}
	}
	return text
}
