// Package intel keeps the cross-session log of extracted artifacts so
// they can be browsed and searched independently of any one session.
package intel

import (
	"strings"
	"sync"
	"time"
)

// Entry is one logged artifact.
type Entry struct {
	Type      string    `json:"type"`
	Value     string    `json:"value"`
	SessionID string    `json:"sessionId"`
	Timestamp time.Time `json:"timestamp"`
}

// maxEntries bounds memory use; the oldest entries are dropped first.
const maxEntries = 10000

// Log is an append-only, size-bounded artifact log.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	total   int
	now     func() time.Time
}

// NewLog creates an empty log. now may be nil for wall-clock time.
func NewLog(now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{now: now}
}

// TypeFor derives the log entry type from an artifact kind key, e.g.
// "phoneNumbers" becomes "phone" and "upiIds" becomes "upi".
func TypeFor(kind string) string {
	kind = strings.ReplaceAll(kind, "Numbers", "")
	kind = strings.ReplaceAll(kind, "Ids", "")
	return strings.ToLower(kind)
}

// Append records one artifact value for a session.
func (l *Log) Append(kind, value, sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{
		Type:      TypeFor(kind),
		Value:     value,
		SessionID: sessionID,
		Timestamp: l.now(),
	})
	l.total++
	if len(l.entries) > maxEntries {
		l.entries = l.entries[len(l.entries)-maxEntries:]
	}
}

// Total returns the number of artifacts ever appended.
func (l *Log) Total() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

// Recent returns up to n of the newest entries, oldest first.
func (l *Log) Recent(n int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	return append([]Entry(nil), l.entries[start:]...)
}

// Search returns entries whose value contains q (case-insensitive),
// optionally filtered by type, capped at limit.
func (l *Log) Search(q, entryType string, limit int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	q = strings.ToLower(q)
	var out []Entry
	for _, e := range l.entries {
		if !strings.Contains(strings.ToLower(e.Value), q) {
			continue
		}
		if entryType != "" && e.Type != entryType {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
