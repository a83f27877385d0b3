package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const archiveTTL = 24 * time.Hour

// Archive snapshots sessions to redis so engagements survive a restart
// long enough for offline review. It is optional; the service runs
// memory-only when no redis address is configured.
type Archive struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewArchive creates an archive backed by the given redis client.
func NewArchive(client *redis.Client, tracer trace.Tracer) *Archive {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("scamshield.internal.session.archive")
	}
	return &Archive{
		redis:  client,
		tracer: tracer,
	}
}

// Save persists a snapshot of the session.
func (a *Archive) Save(ctx context.Context, sess *Session) error {
	ctx, span := a.tracer.Start(ctx, "session.save_snapshot")
	defer span.End()

	data, err := json.Marshal(sess)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to marshal snapshot: %w", err)
	}
	if err := a.redis.Set(ctx, archiveKey(sess.SessionID), data, archiveTTL).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to persist snapshot: %w", err)
	}
	return nil
}

// Load retrieves an archived session snapshot.
func (a *Archive) Load(ctx context.Context, id string) (*Session, error) {
	ctx, span := a.tracer.Start(ctx, "session.load_snapshot")
	defer span.End()

	data, err := a.redis.Get(ctx, archiveKey(id)).Bytes()
	if err != nil {
		span.RecordError(err)
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: failed to load snapshot: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to decode snapshot: %w", err)
	}
	return &sess, nil
}

func archiveKey(id string) string {
	return fmt.Sprintf("honeypot:session:%s", id)
}
