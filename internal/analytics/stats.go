// Package analytics keeps running counters over honeypot activity for
// the dashboard and export endpoints.
package analytics

import "sync"

// Stats is a mutex-guarded set of counters. Prometheus covers the
// operational metrics; these counters back the JSON dashboard payloads.
type Stats struct {
	mu                 sync.RWMutex
	totalSessions      int
	totalScamsDetected int
	totalIntelligence  int
	categoryBreakdown  map[string]int
}

// New creates zeroed stats.
func New() *Stats {
	return &Stats{categoryBreakdown: make(map[string]int)}
}

// SessionStarted counts a newly created session.
func (s *Stats) SessionStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalSessions++
}

// ScamConfirmed counts a completed session that was flagged as a scam.
func (s *Stats) ScamConfirmed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalScamsDetected++
}

// IntelligenceFound counts n newly extracted artifacts.
func (s *Stats) IntelligenceFound(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalIntelligence += n
}

// CategoryDetected counts one detection of the given scam category.
func (s *Stats) CategoryDetected(category string) {
	if category == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryBreakdown[category]++
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	TotalSessions      int            `json:"totalSessions"`
	TotalScamsDetected int            `json:"totalScamsDetected"`
	TotalIntelligence  int            `json:"totalIntelligence"`
	CategoryBreakdown  map[string]int `json:"categoryBreakdown"`
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	breakdown := make(map[string]int, len(s.categoryBreakdown))
	for k, v := range s.categoryBreakdown {
		breakdown[k] = v
	}
	return Snapshot{
		TotalSessions:      s.totalSessions,
		TotalScamsDetected: s.totalScamsDetected,
		TotalIntelligence:  s.totalIntelligence,
		CategoryBreakdown:  breakdown,
	}
}
