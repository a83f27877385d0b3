package honeypot

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/SakethSumanBathini/scam-shield-api/internal/actor"
	"github.com/SakethSumanBathini/scam-shield-api/internal/analytics"
	"github.com/SakethSumanBathini/scam-shield-api/internal/conversation"
	"github.com/SakethSumanBathini/scam-shield-api/internal/detection"
	"github.com/SakethSumanBathini/scam-shield-api/internal/extraction"
	"github.com/SakethSumanBathini/scam-shield-api/internal/intel"
	"github.com/SakethSumanBathini/scam-shield-api/internal/observability/metrics"
	"github.com/SakethSumanBathini/scam-shield-api/internal/persona"
	"github.com/SakethSumanBathini/scam-shield-api/internal/report"
	"github.com/SakethSumanBathini/scam-shield-api/internal/session"
	"github.com/SakethSumanBathini/scam-shield-api/pkg/logging"
)

// completionThreshold ends an engagement once this many messages have
// been exchanged.
const completionThreshold = 10

// Options tunes optional service behavior.
type Options struct {
	MaxExchanges   int
	SessionTimeout time.Duration
	Archive        *session.Archive
	Metrics        *metrics.HoneypotMetrics
	Logger         *logging.Logger
	Rand           *rand.Rand
	Now            func() time.Time
}

// Service orchestrates one message turn: detection, extraction, reply
// generation, session bookkeeping and final reporting.
type Service struct {
	store      *session.Store
	engine     *conversation.Engine
	dispatcher *report.Dispatcher
	profiler   *actor.Profiler
	intelLog   *intel.Log
	stats      *analytics.Stats

	archive *session.Archive
	metrics *metrics.HoneypotMetrics
	logger  *logging.Logger
	tracer  trace.Tracer

	maxExchanges   int
	sessionTimeout time.Duration
	now            func() time.Time

	mu  sync.Mutex
	rng *rand.Rand

	// reports tracks in-flight report deliveries so shutdown can wait.
	reports sync.WaitGroup
}

// NewService wires the honeypot service.
func NewService(store *session.Store, engine *conversation.Engine, dispatcher *report.Dispatcher,
	profiler *actor.Profiler, intelLog *intel.Log, stats *analytics.Stats, opts Options) *Service {

	if opts.MaxExchanges <= 0 {
		opts.MaxExchanges = 20
	}
	if opts.SessionTimeout <= 0 {
		opts.SessionTimeout = 10 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		store:          store,
		engine:         engine,
		dispatcher:     dispatcher,
		profiler:       profiler,
		intelLog:       intelLog,
		stats:          stats,
		archive:        opts.Archive,
		metrics:        opts.Metrics,
		logger:         opts.Logger.WithComponent("honeypot"),
		tracer:         otel.Tracer("scamshield.internal.honeypot"),
		maxExchanges:   opts.MaxExchanges,
		sessionTimeout: opts.SessionTimeout,
		now:            opts.Now,
		rng:            opts.Rand,
	}
}

// Store exposes the session store for read-only handlers.
func (s *Service) Store() *session.Store { return s.store }

// Profiler exposes the actor profiler for read-only handlers.
func (s *Service) Profiler() *actor.Profiler { return s.profiler }

// IntelLog exposes the artifact log for read-only handlers.
func (s *Service) IntelLog() *intel.Log { return s.intelLog }

// Stats exposes the analytics counters for read-only handlers.
func (s *Service) Stats() *analytics.Stats { return s.stats }

func (s *Service) pickPersona() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return persona.Catalog[s.rng.Intn(len(persona.Catalog))].Key
}

// HandleMessage processes one scammer message and returns the decoy's
// reply with full analysis. Processing for a given session is
// serialized; distinct sessions proceed in parallel.
func (s *Service) HandleMessage(ctx context.Context, req Request) (Response, error) {
	ctx, span := s.tracer.Start(ctx, "honeypot.handle_message",
		trace.WithAttributes(attribute.String("session.id", req.SessionID)))
	defer span.End()

	if err := req.Validate(); err != nil {
		span.RecordError(err)
		return Response{}, err
	}

	now := s.now()
	sess, created := s.store.GetOrCreate(req.SessionID, func() *session.Session {
		return &session.Session{
			SessionID:    req.SessionID,
			CreatedAt:    now,
			UpdatedAt:    now,
			Status:       session.StatusActive,
			ThreatLevel:  string(detection.ThreatSafe),
			Intelligence: extraction.Set{},
			Persona:      s.pickPersona(),
		}
	})
	if created {
		s.stats.SessionStarted()
		s.logger.Info("session started", "sessionId", req.SessionID, "persona", sess.Persona)
	}

	unlock, err := s.store.Acquire(req.SessionID)
	if err != nil {
		span.RecordError(err)
		return Response{}, err
	}
	defer unlock()

	sess.UpdatedAt = now

	// A fresh session with caller-supplied history is a conversation
	// resumed from another process. Rebuild it before the new turn.
	if len(sess.Messages) == 0 && len(req.ConversationHistory) > 0 {
		for _, m := range req.ConversationHistory {
			sender := session.SenderAgent
			if m.Sender == session.SenderScammer {
				sender = session.SenderScammer
			}
			sess.Messages = append(sess.Messages, session.Message{
				Sender:    sender,
				Text:      m.Text,
				Timestamp: m.Timestamp,
			})
		}
	}

	sess.Messages = append(sess.Messages, session.Message{
		Sender:    session.SenderScammer,
		Text:      req.Message.Text,
		Timestamp: req.Message.Timestamp,
	})

	p := persona.Get(sess.Persona)
	s.metrics.ObserveMessage(p.Key)

	analysis := detection.Analyze(ctx, req.Message.Text, sess.MessageTexts())
	s.metrics.ObserveDetection(string(analysis.ThreatLevel), analysis.ScamDetected)

	if analysis.ScamDetected {
		if !sess.ScamDetected {
			sess.ScamDetected = true
			s.stats.ScamConfirmed()
			if analysis.ScamCategory != nil {
				s.stats.CategoryDetected(*analysis.ScamCategory)
			}
		}
		sess.ScamCategory = analysis.ScamCategory
		sess.ThreatLevel = string(analysis.ThreatLevel)
		if analysis.ConfidenceScore > sess.Confidence {
			sess.Confidence = analysis.ConfidenceScore
		}
	}

	extracted := extraction.ExtractAll(req.Message.Text)
	found := 0
	for _, kind := range extraction.Kinds {
		for _, value := range extracted[kind] {
			sess.Intelligence.Add(kind, value)
			s.intelLog.Append(kind, value, sess.SessionID)
			found++
		}
		s.metrics.ObserveArtifacts(kind, len(extracted[kind]))
	}
	if found > 0 {
		s.stats.IntelligenceFound(found)
	}

	category := ""
	if sess.ScamCategory != nil {
		category = *sess.ScamCategory
	}
	history := make([]conversation.Turn, len(sess.Messages))
	for i, m := range sess.Messages {
		history[i] = conversation.Turn{FromScammer: m.Sender == session.SenderScammer, Text: m.Text}
	}

	replyStart := time.Now()
	reply, generated := s.engine.Reply(ctx, conversation.ReplyInput{
		Persona:      p,
		Message:      req.Message.Text,
		History:      history,
		MessageCount: len(sess.Messages),
		ScamCategory: category,
		ThreatLevel:  sess.ThreatLevel,
	})
	s.metrics.ObserveReplyLatency(generated, time.Since(replyStart).Seconds())

	sess.Messages = append(sess.Messages, session.Message{
		Sender:    session.SenderAgent,
		Text:      reply,
		Timestamp: s.now().UnixMilli(),
	})

	if len(sess.Messages) >= completionThreshold || len(sess.Messages) >= s.maxExchanges*2 {
		s.completeLocked(ctx, sess, session.StatusCompleted)
	}

	s.snapshotLocked(ctx, sess)

	return Response{
		Status:                "success",
		Reply:                 reply,
		Analysis:              &analysis,
		ExtractedIntelligence: sess.Intelligence.Clone(),
		ConversationMetrics: &ConversationMetrics{
			MessageCount:      len(sess.Messages),
			SessionDuration:   int(now.Sub(sess.CreatedAt).Seconds()),
			IntelligenceCount: sess.Intelligence.Count(),
		},
		AgentState: &AgentState{
			Persona:       p.Key,
			PersonaName:   p.Name,
			SessionStatus: string(sess.Status),
		},
	}, nil
}

// End completes a session explicitly, dispatching the final report if
// a scam was detected and not yet reported.
func (s *Service) End(ctx context.Context, sessionID string) (*session.Session, error) {
	return s.end(ctx, sessionID, session.StatusCompleted)
}

func (s *Service) end(ctx context.Context, sessionID string, status session.Status) (*session.Session, error) {
	ctx, span := s.tracer.Start(ctx, "honeypot.end_session",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	sess, err := s.store.Get(sessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	unlock, err := s.store.Acquire(sessionID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer unlock()

	s.completeLocked(ctx, sess, status)
	s.snapshotLocked(ctx, sess)
	return sess, nil
}

// ExpireIdle times out every active session that has been idle longer
// than the session timeout. Main runs this on a ticker.
func (s *Service) ExpireIdle(ctx context.Context) int {
	cutoff := s.now().Add(-s.sessionTimeout)
	ids := s.store.IdleSince(cutoff)
	for _, id := range ids {
		if _, err := s.end(ctx, id, session.StatusTimeout); err != nil {
			s.logger.Warn("failed to expire session", "sessionId", id, "error", err)
		}
	}
	if len(ids) > 0 {
		s.logger.Info("expired idle sessions", "count", len(ids))
	}
	return len(ids)
}

// Wait blocks until all in-flight report deliveries finish.
func (s *Service) Wait() {
	s.reports.Wait()
}

// completeLocked moves an active session to its final status and,
// exactly once per session, confirms the scam and dispatches the final
// report. The caller holds the session lock.
func (s *Service) completeLocked(ctx context.Context, sess *session.Session, status session.Status) {
	if sess.Status == session.StatusActive {
		sess.Status = status
	}

	if !sess.ScamDetected || sess.ReportSent {
		return
	}
	sess.ReportSent = true

	category := ""
	if sess.ScamCategory != nil {
		category = *sess.ScamCategory
	}
	s.profiler.Update(actor.SessionSummary{
		SessionID:    sess.SessionID,
		Intelligence: sess.Intelligence.Clone(),
		ScamCategory: category,
	})

	payload := report.BuildPayload(sess)
	s.reports.Add(1)
	go func() {
		defer s.reports.Done()
		if err := s.dispatcher.Send(context.WithoutCancel(ctx), payload); err != nil {
			s.metrics.ObserveReport("error")
			return
		}
		s.metrics.ObserveReport("ok")
	}()
}

// snapshotLocked archives the session if an archive is configured. The
// caller holds the session lock.
func (s *Service) snapshotLocked(ctx context.Context, sess *session.Session) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Save(ctx, sess); err != nil {
		s.logger.Warn("session snapshot failed", "sessionId", sess.SessionID, "error", err)
	}
}
