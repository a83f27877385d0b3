package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SakethSumanBathini/scam-shield-api/internal/extraction"
)

func newTestSession(id string) func() *Session {
	return func() *Session {
		now := time.Now()
		return &Session{
			SessionID:    id,
			CreatedAt:    now,
			UpdatedAt:    now,
			Status:       StatusActive,
			ThreatLevel:  "SAFE",
			Intelligence: extraction.Set{},
			Persona:      "confused_elderly",
		}
	}
}

func TestStoreGetOrCreate(t *testing.T) {
	store := NewStore()

	first, created := store.GetOrCreate("s1", newTestSession("s1"))
	require.True(t, created)

	second, created := store.GetOrCreate("s1", newTestSession("s1"))
	assert.False(t, created)
	assert.Same(t, first, second)

	assert.Equal(t, 1, store.Len())
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Acquire("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreListPreservesCreationOrder(t *testing.T) {
	store := NewStore()
	for _, id := range []string{"a", "b", "c"} {
		store.GetOrCreate(id, newTestSession(id))
	}

	list := store.List()
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].SessionID)
	assert.Equal(t, "b", list[1].SessionID)
	assert.Equal(t, "c", list[2].SessionID)
}

func TestStoreAcquireSerializesAccess(t *testing.T) {
	store := NewStore()
	store.GetOrCreate("s1", newTestSession("s1"))

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := store.Acquire("s1")
			require.NoError(t, err)
			defer unlock()

			sess, err := store.Get("s1")
			require.NoError(t, err)
			sess.Messages = append(sess.Messages, Message{Sender: SenderScammer, Text: "hi"})
		}()
	}
	wg.Wait()

	sess, err := store.Get("s1")
	require.NoError(t, err)
	assert.Len(t, sess.Messages, workers)
}

func TestStoreIdleSince(t *testing.T) {
	store := NewStore()
	stale, _ := store.GetOrCreate("stale", newTestSession("stale"))
	fresh, _ := store.GetOrCreate("fresh", newTestSession("fresh"))
	done, _ := store.GetOrCreate("done", newTestSession("done"))

	stale.UpdatedAt = time.Now().Add(-time.Hour)
	fresh.UpdatedAt = time.Now()
	done.UpdatedAt = time.Now().Add(-time.Hour)
	done.Status = StatusCompleted

	ids := store.IdleSince(time.Now().Add(-10 * time.Minute))
	assert.Equal(t, []string{"stale"}, ids)
}

func TestStoreCountActive(t *testing.T) {
	store := NewStore()
	store.GetOrCreate("a", newTestSession("a"))
	b, _ := store.GetOrCreate("b", newTestSession("b"))
	b.Status = StatusCompleted

	assert.Equal(t, 1, store.CountActive())
}

func TestArchiveRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	archive := NewArchive(client, nil)

	sess := newTestSession("s1")()
	sess.Messages = append(sess.Messages, Message{Sender: SenderScammer, Text: "your account is blocked", Timestamp: 1700000000000})
	sess.Intelligence.Add(extraction.KindPhoneNumbers, "9876543210")

	require.NoError(t, archive.Save(context.Background(), sess))

	loaded, err := archive.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, sess.SessionID, loaded.SessionID)
	assert.Equal(t, sess.Messages, loaded.Messages)
	assert.Equal(t, []string{"9876543210"}, loaded.Intelligence[extraction.KindPhoneNumbers])
}

func TestArchiveLoadMissing(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	archive := NewArchive(client, nil)

	_, err := archive.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionScammerText(t *testing.T) {
	sess := newTestSession("s1")()
	sess.Messages = []Message{
		{Sender: SenderScammer, Text: "pay now"},
		{Sender: SenderAgent, Text: "which account beta?"},
		{Sender: SenderScammer, Text: "share otp"},
	}

	assert.Equal(t, []string{"pay now", "share otp"}, sess.ScammerText())
	assert.Len(t, sess.MessageTexts(), 3)
}

func TestStoreSnapshotIsDeepCopy(t *testing.T) {
	store := NewStore()
	live, _ := store.GetOrCreate("s1", newTestSession("s1"))
	live.Messages = append(live.Messages, Message{Sender: SenderScammer, Text: "hello", Timestamp: 1})
	live.Intelligence.Add(extraction.KindUPIIDs, "fraud@ybl")

	snap, err := store.Snapshot("s1")
	require.NoError(t, err)
	require.NotSame(t, live, snap)

	snap.Messages[0].Text = "tampered"
	snap.Intelligence.Add(extraction.KindUPIIDs, "other@ybl")

	assert.Equal(t, "hello", live.Messages[0].Text)
	assert.Equal(t, []string{"fraud@ybl"}, live.Intelligence[extraction.KindUPIIDs])

	_, err = store.Snapshot("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

// Health checks and the idle sweep scan sessions while turns mutate
// them. The scans must synchronize on the per-session lock, so this
// fails under the race detector if they read unlocked.
func TestStoreScansRaceWithMutation(t *testing.T) {
	store := NewStore()
	store.GetOrCreate("s1", newTestSession("s1"))

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			unlock, err := store.Acquire("s1")
			require.NoError(t, err)
			sess, err := store.Get("s1")
			require.NoError(t, err)
			sess.UpdatedAt = time.Now()
			sess.Status = StatusActive
			unlock()
		}
	}()

	for i := 0; i < 200; i++ {
		store.CountActive()
		store.IdleSince(time.Now().Add(-time.Minute))
	}
	close(done)
	wg.Wait()
}

func TestStoreSnapshotAll(t *testing.T) {
	store := NewStore()
	store.GetOrCreate("a", newTestSession("a"))
	store.GetOrCreate("b", newTestSession("b"))

	all := store.SnapshotAll()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].SessionID)
	assert.Equal(t, "b", all[1].SessionID)
}
