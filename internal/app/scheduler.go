package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
	"github.com/jsamuelsen/daily-quote-bot/internal/platform/logging"
	"github.com/jsamuelsen/daily-quote-bot/internal/platform/telemetry"
	"github.com/jsamuelsen/daily-quote-bot/internal/ports"
)

// Default sleep bounds between rounds, in whole hours.
const (
	DefaultMinHours = 2
	DefaultMaxHours = 5
)

// Sleeper blocks for d or until ctx is done, returning ctx.Err() in the latter case.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d).
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// TimerSleeper sleeps on a real timer.
type TimerSleeper struct{}

// Sleep implements Sleeper.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NextInterval draws a whole number of hours uniformly from [minHours, maxHours]
// and returns it with the matching duration.
func NextInterval(rng Rand, minHours, maxHours int) (int, time.Duration) {
	hours := minHours + rng.IntN(maxHours-minHours+1)
	return hours, time.Duration(hours) * time.Hour
}

// Scheduler is the poster loop: locate, send, sleep, repeat.
// It runs on a single goroutine; Run must not be called concurrently.
type Scheduler struct {
	platform  ports.DiscussionPlatform
	locator   *Locator
	sender    *Sender
	quotes    *domain.QuoteList
	community string
	minHours  int
	maxHours  int
	rng       Rand
	sleeper   Sleeper
	metrics   *telemetry.BotMetrics
	status    *Status
	maxRounds int
	logger    *slog.Logger
	now       func() time.Time

	last string
}

// SchedulerConfig contains the scheduler's dependencies.
type SchedulerConfig struct {
	Platform  ports.DiscussionPlatform
	Locator   *Locator
	Sender    *Sender
	Quotes    *domain.QuoteList
	Community string

	// MinHours and MaxHours bound the sleep between rounds.
	// Zero values select DefaultMinHours and DefaultMaxHours.
	MinHours int
	MaxHours int

	Rand    Rand
	Sleeper Sleeper

	// Optional.
	Metrics *telemetry.BotMetrics
	Status  *Status

	// MaxRounds stops Run after that many rounds. Zero runs until cancelled.
	MaxRounds int

	Logger *slog.Logger
}

// NewScheduler creates a scheduler. It returns an error when a required
// dependency is missing or the interval bounds are inverted.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	switch {
	case cfg.Platform == nil:
		return nil, domain.NewValidationError("platform", "is required")
	case cfg.Locator == nil:
		return nil, domain.NewValidationError("locator", "is required")
	case cfg.Sender == nil:
		return nil, domain.NewValidationError("sender", "is required")
	case cfg.Quotes == nil || cfg.Quotes.Len() == 0:
		return nil, domain.NewValidationError("quotes", "at least one quote is required")
	case cfg.Community == "":
		return nil, domain.NewValidationError("community", "is required")
	case cfg.Rand == nil:
		return nil, domain.NewValidationError("rand", "is required")
	}

	minHours, maxHours := cfg.MinHours, cfg.MaxHours
	if minHours == 0 {
		minHours = DefaultMinHours
	}

	if maxHours == 0 {
		maxHours = DefaultMaxHours
	}

	if minHours < 0 || maxHours < minHours {
		return nil, domain.NewValidationError("interval",
			fmt.Sprintf("invalid bounds [%d, %d] hours", minHours, maxHours))
	}

	sleeper := cfg.Sleeper
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		platform:  cfg.Platform,
		locator:   cfg.Locator,
		sender:    cfg.Sender,
		quotes:    cfg.Quotes,
		community: cfg.Community,
		minHours:  minHours,
		maxHours:  maxHours,
		rng:       cfg.Rand,
		sleeper:   sleeper,
		metrics:   cfg.Metrics,
		status:    cfg.Status,
		maxRounds: cfg.MaxRounds,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Run authenticates and then loops until ctx is cancelled or a round fails.
// Cancellation ends the loop with a nil error.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting",
		slog.String("subreddit", s.community),
		slog.Int("quotes", s.quotes.Len()),
		slog.Bool("dry_run", s.sender.DryRun()),
	)

	if err := s.platform.Authenticate(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return fmt.Errorf("authenticating: %w", err)
	}

	s.status.Started(s.sender.DryRun())

	for round := 1; ; round++ {
		if _, err := s.RunOnce(ctx); err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				s.logger.InfoContext(ctx, "stopping", slog.Int("rounds", round-1))
				return nil
			}

			return err
		}

		if s.maxRounds > 0 && round >= s.maxRounds {
			return nil
		}

		hours, d := NextInterval(s.rng, s.minHours, s.maxHours)
		next := s.now().Add(d)

		s.logger.InfoContext(ctx, "waiting",
			slog.Int("hours", hours),
			slog.Time("next_round_at", next),
		)
		s.metrics.SleepScheduled(ctx, d)
		s.status.Scheduled(next)

		if err := s.sleeper.Sleep(ctx, d); err != nil {
			if ctx.Err() != nil {
				s.logger.InfoContext(ctx, "stopping", slog.Int("rounds", round))
				return nil
			}

			return fmt.Errorf("sleeping: %w", err)
		}
	}
}

// RunOnce runs a single round and returns its outcome
// (one of the telemetry.Outcome* values).
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	roundID := uuid.NewString()

	ctx = logging.WithContext(ctx, s.logger)
	ctx = logging.WithRoundID(ctx, roundID)

	ctx, span := telemetry.Tracer().Start(ctx, "quotebot.round",
		trace.WithAttributes(
			attribute.String("round.id", roundID),
			attribute.String("reddit.subreddit", s.community),
		))
	defer span.End()

	outcome, post, quote, err := s.round(ctx)

	span.SetAttributes(attribute.String("round.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		if step, ok := StepOf(err); ok {
			span.SetAttributes(attribute.String("round.failed_step", string(step)))
		}
	}

	s.metrics.RoundFinished(ctx, outcome)
	s.status.RoundFinished(roundID, outcome, post, quote, err)

	return outcome, err
}

func (s *Scheduler) round(ctx context.Context) (string, *domain.Post, string, error) {
	post, found, err := s.locator.Find(ctx, s.community)
	if err != nil {
		return telemetry.OutcomeFailed, nil, "", err
	}

	if !found {
		return telemetry.OutcomeNotFound, nil, "", nil
	}

	quote, err := s.sender.Send(ctx, post, s.quotes, s.last)
	if err != nil {
		return telemetry.OutcomeFailed, post, "", fmt.Errorf("sending quote: %w", err)
	}

	s.last = quote

	if s.sender.DryRun() {
		return telemetry.OutcomeDryRun, post, quote, nil
	}

	return telemetry.OutcomeSent, post, quote, nil
}

// LastSent returns the most recently sent quote, or "" before the first send.
func (s *Scheduler) LastSent() string {
	return s.last
}
