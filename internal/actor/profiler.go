// Package actor tracks repeat scammers across sessions, keyed by the
// phone numbers and payment handles they expose.
package actor

import (
	"sync"
	"time"

	"github.com/SakethSumanBathini/scam-shield-api/internal/extraction"
)

// Profile aggregates everything seen from one identifier.
type Profile struct {
	Identifier      string         `json:"identifier"`
	FirstSeen       time.Time      `json:"firstSeen"`
	LastSeen        time.Time      `json:"lastSeen"`
	TotalSessions   int            `json:"totalSessions"`
	ScamTypes       []string       `json:"scamTypes"`
	AllIntelligence extraction.Set `json:"allIntelligence"`
	RiskScore       int            `json:"riskScore"`

	// sessions makes Update idempotent per session per identifier.
	sessions map[string]struct{}
}

// SessionSummary is the slice of session state the profiler consumes.
type SessionSummary struct {
	SessionID    string
	Intelligence extraction.Set
	ScamCategory string
}

// Profiler maintains actor profiles in memory.
type Profiler struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	order    []string
	now      func() time.Time
}

// NewProfiler creates an empty profiler. now may be nil for wall-clock
// time.
func NewProfiler(now func() time.Time) *Profiler {
	if now == nil {
		now = time.Now
	}
	return &Profiler{
		profiles: make(map[string]*Profile),
		now:      now,
	}
}

// Update folds a finished exchange into the profiles of every
// identifier it surfaced. The risk score grows with repeat sessions
// and with the variety of scam types, capped at 100.
func (p *Profiler) Update(summary SessionSummary) {
	identifiers := append(
		append([]string(nil), summary.Intelligence[extraction.KindPhoneNumbers]...),
		summary.Intelligence[extraction.KindUPIIDs]...,
	)
	if len(identifiers) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	for _, id := range identifiers {
		profile, ok := p.profiles[id]
		if !ok {
			profile = &Profile{
				Identifier:      id,
				FirstSeen:       now,
				ScamTypes:       []string{},
				AllIntelligence: extraction.Set{},
				sessions:        make(map[string]struct{}),
			}
			p.profiles[id] = profile
			p.order = append(p.order, id)
		}

		profile.LastSeen = now
		if _, seen := profile.sessions[summary.SessionID]; !seen {
			profile.sessions[summary.SessionID] = struct{}{}
			profile.TotalSessions = len(profile.sessions)
		}

		if summary.ScamCategory != "" && !contains(profile.ScamTypes, summary.ScamCategory) {
			profile.ScamTypes = append(profile.ScamTypes, summary.ScamCategory)
		}

		profile.AllIntelligence.Merge(summary.Intelligence)

		profile.RiskScore = profile.TotalSessions*20 + len(profile.ScamTypes)*15
		if profile.RiskScore > 100 {
			profile.RiskScore = 100
		}
	}
}

// Get returns the profile for an identifier.
func (p *Profiler) Get(identifier string) (*Profile, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	profile, ok := p.profiles[identifier]
	if !ok {
		return nil, false
	}
	return profile.clone(), true
}

// All returns every profile in first-seen order.
func (p *Profiler) All() []*Profile {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]*Profile, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.profiles[id].clone())
	}
	return out
}

// Len returns the number of tracked identifiers.
func (p *Profiler) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.profiles)
}

func (pr *Profile) clone() *Profile {
	cp := *pr
	cp.ScamTypes = append([]string(nil), pr.ScamTypes...)
	cp.AllIntelligence = pr.AllIntelligence.Clone()
	cp.sessions = nil
	return &cp
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
