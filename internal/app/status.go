package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
	"github.com/jsamuelsen/daily-quote-bot/internal/ports"
)

// DefaultStatusGrace is how far past its scheduled time a round may run
// before the scheduler is reported unhealthy.
const DefaultStatusGrace = 15 * time.Minute

var _ ports.HealthChecker = (*Status)(nil)

// Snapshot is a point-in-time copy of the poster loop's progress.
type Snapshot struct {
	StartedAt   time.Time `json:"started_at,omitzero"`
	Rounds      int       `json:"rounds"`
	QuotesSent  int       `json:"quotes_sent"`
	LastRoundAt time.Time `json:"last_round_at,omitzero"`
	LastRoundID string    `json:"last_round_id,omitempty"`
	LastOutcome string    `json:"last_outcome,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
	LastQuote   string    `json:"last_quote,omitempty"`
	LastPost    string    `json:"last_post,omitempty"`
	NextRoundAt time.Time `json:"next_round_at,omitzero"`
	DryRun      bool      `json:"dry_run"`
}

// Status is written by the poster loop and read by the ops server.
// A nil *Status ignores writes.
type Status struct {
	mu    sync.RWMutex
	snap  Snapshot
	grace time.Duration
	now   func() time.Time
}

// NewStatus creates an empty status. A grace <= 0 selects DefaultStatusGrace.
func NewStatus(grace time.Duration) *Status {
	if grace <= 0 {
		grace = DefaultStatusGrace
	}

	return &Status{grace: grace, now: time.Now}
}

// Started marks the loop as running.
func (s *Status) Started(dryRun bool) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.StartedAt = s.now()
	s.snap.DryRun = dryRun
}

// RoundFinished records the result of one round. post and err may be nil.
func (s *Status) RoundFinished(roundID, outcome string, post *domain.Post, quote string, err error) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Rounds++
	s.snap.LastRoundAt = s.now()
	s.snap.LastRoundID = roundID
	s.snap.LastOutcome = outcome
	s.snap.LastError = ""
	s.snap.LastPost = ""

	if err != nil {
		s.snap.LastError = err.Error()
	}

	if post != nil {
		s.snap.LastPost = post.Permalink
	}

	if quote != "" {
		s.snap.LastQuote = quote
		if !s.snap.DryRun {
			s.snap.QuotesSent++
		}
	}
}

// Scheduled records when the next round is due.
func (s *Status) Scheduled(next time.Time) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.NextRoundAt = next
}

// Snapshot returns a copy of the current status.
func (s *Status) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap
}

// Name implements ports.HealthChecker.
func (s *Status) Name() string {
	return "scheduler"
}

// Check fails when the last round failed or the next one is overdue.
func (s *Status) Check(_ context.Context) error {
	snap := s.Snapshot()

	if snap.LastError != "" {
		return fmt.Errorf("last round failed: %s", snap.LastError)
	}

	if !snap.NextRoundAt.IsZero() {
		if late := s.now().Sub(snap.NextRoundAt); late > s.grace {
			return fmt.Errorf("next round overdue by %s", late.Truncate(time.Second))
		}
	}

	return nil
}
