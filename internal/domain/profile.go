package domain

import (
	"context"
	"sync"
	"time"
)

// Span times one stage of a run
type Span struct {
	Name      string `json:"name"`
	ElapsedMs *int64 `json:"elapsedMs"`
	startTs   time.Time
}

func NewSpan(name string) (*Span, func()) {
	s := &Span{
		Name:    name,
		startTs: time.Now(),
	}
	return s, s.End
}

func (s *Span) End() {
	if s.ElapsedMs == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.ElapsedMs = &t
	}
}

// Profile is the list of spans recorded for one analysis run. AddSpan is
// safe to call from the per-company fetch goroutines.
type Profile struct {
	mu      sync.Mutex
	Spans   []*Span `json:"spans"`
	TotalMs *int64  `json:"totalMs"`
	startTs time.Time
}

type profileContextKey struct{}

func NewProfile() (*Profile, func()) {
	p := &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}
	return p, p.End
}

func (p *Profile) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

func (p *Profile) AddSpan(s *Span) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Spans = append(p.Spans, s)
}

// StartNewSpan ends the most recent span and begins a new one
func (p *Profile) StartNewSpan(name string) (*Span, func()) {
	s, end := NewSpan(name)
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	p.Spans = append(p.Spans, s)
	return s, end
}

// Summary maps span names to elapsed milliseconds, for logging
func (p *Profile) Summary() map[string]int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := map[string]int64{}
	for _, s := range p.Spans {
		if s.ElapsedMs != nil {
			out[s.Name] = *s.ElapsedMs
		}
	}
	return out
}

func WithProfile(ctx context.Context, p *Profile) context.Context {
	return context.WithValue(ctx, profileContextKey{}, p)
}

// ProfileFromContext returns a throwaway profile when none is attached
func ProfileFromContext(ctx context.Context) *Profile {
	if p, ok := ctx.Value(profileContextKey{}).(*Profile); ok {
		return p
	}
	p, _ := NewProfile()
	return p
}
