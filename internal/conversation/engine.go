package conversation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/SakethSumanBathini/scam-shield-api/internal/persona"
	"github.com/SakethSumanBathini/scam-shield-api/pkg/logging"
)

var replyTracer = otel.Tracer("scamshield.internal.conversation")

// Generation parameters tuned for short, in-character replies with
// high variety.
const (
	replyMaxTokens   = 120
	replyTemperature = 0.95
	replyTopP        = 0.95
	replyTopK        = 50
)

// ReplyInput carries everything the engine needs to produce one reply.
type ReplyInput struct {
	Persona      *persona.Persona
	Message      string
	History      []Turn
	MessageCount int
	ScamCategory string
	ThreatLevel  string
}

// Engine produces decoy replies, preferring the LLM and falling back
// to canned persona lines when no client is configured or a call fails.
type Engine struct {
	llm     LLMClient
	timeout time.Duration
	logger  *logging.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine creates a reply engine. llm may be nil, in which case every
// reply is rule-based. rng may be nil for a time-seeded source; tests
// pass a seeded one for determinism.
func NewEngine(llm LLMClient, timeout time.Duration, logger *logging.Logger, rng *rand.Rand) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		llm:     llm,
		timeout: timeout,
		logger:  logger.WithComponent("conversation"),
		rng:     rng,
	}
}

func (e *Engine) pick(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

// Reply generates the decoy's next message. The second return reports
// whether the LLM produced it (false means rule-based fallback).
func (e *Engine) Reply(ctx context.Context, in ReplyInput) (string, bool) {
	ctx, span := replyTracer.Start(ctx, "conversation.reply")
	defer span.End()

	reply, generated := e.reply(ctx, in)

	span.SetAttributes(
		attribute.String("reply.persona", in.Persona.Key),
		attribute.Int("reply.phase", int(persona.PhaseFor(in.MessageCount))),
		attribute.Bool("reply.generated", generated),
	)
	return reply, generated
}

func (e *Engine) reply(ctx context.Context, in ReplyInput) (string, bool) {
	if e.llm == nil {
		return RuleBasedReply(in.Persona, in.Message, in.MessageCount, e.pick), false
	}

	mood := moods[e.pick(len(moods))]
	prompt := BuildPrompt(in.Persona, in.ScamCategory, in.ThreatLevel, in.MessageCount, mood, in.History, in.Message)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.llm.Complete(ctx, LLMRequest{
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: prompt}},
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
		TopP:        replyTopP,
		TopK:        replyTopK,
	})
	if err != nil {
		e.logger.Warn("llm reply failed, using rule-based fallback", "error", err, "persona", in.Persona.Key)
		return RuleBasedReply(in.Persona, in.Message, in.MessageCount, e.pick), false
	}

	reply := CleanReply(resp.Text, in.Persona.Name)
	if reply == "" {
		e.logger.Warn("llm returned empty reply, using rule-based fallback", "persona", in.Persona.Key)
		return RuleBasedReply(in.Persona, in.Message, in.MessageCount, e.pick), false
	}
	return reply, true
}
