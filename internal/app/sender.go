package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
	"github.com/jsamuelsen/daily-quote-bot/internal/platform/logging"
	"github.com/jsamuelsen/daily-quote-bot/internal/ports"
)

var errNoComment = errors.New("platform returned no comment")

// Sender posts one quote per call as a reply to the daily discussion post.
type Sender struct {
	platform ports.DiscussionPlatform
	rng      Rand
	dryRun   bool
	logger   *slog.Logger
}

// SenderConfig contains the sender's dependencies.
type SenderConfig struct {
	Platform ports.DiscussionPlatform
	Rand     Rand

	// DryRun selects and logs a quote without replying.
	DryRun bool

	Logger *slog.Logger
}

// NewSender creates a sender. It panics if Platform or Rand is nil.
func NewSender(cfg SenderConfig) *Sender {
	if cfg.Platform == nil {
		panic("app: sender requires a platform")
	}

	if cfg.Rand == nil {
		panic("app: sender requires a random source")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Sender{
		platform: cfg.Platform,
		rng:      cfg.Rand,
		dryRun:   cfg.DryRun,
		logger:   logger,
	}
}

// DryRun reports whether replies are skipped.
func (s *Sender) DryRun() bool {
	return s.dryRun
}

// Send picks a quote that differs from last (when possible) and posts it to
// post. It returns the quote that was sent, or chosen in dry-run mode.
// Errors are *RoundError values naming the failed step.
func (s *Sender) Send(ctx context.Context, post *domain.Post, quotes *domain.QuoteList, last string) (string, error) {
	logger := logging.FromContextOr(ctx, s.logger)

	var (
		quote   string
		comment *domain.Comment
	)

	err := runStep(ctx, logger, StepValidate, func() error {
		if post == nil {
			return domain.NewValidationError("post", "is required")
		}

		if quotes == nil || quotes.Len() == 0 {
			return domain.NewValidationError("quotes", "at least one quote is required")
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	err = runStep(ctx, logger, StepSelect, func() error {
		quote = SelectQuote(s.rng, quotes, last)
		logger.InfoContext(ctx, "quote chosen", slog.String("quote", quote))

		return nil
	})
	if err != nil {
		return "", err
	}

	err = runStep(ctx, logger, StepReply, func() error {
		if s.dryRun {
			logger.InfoContext(ctx, "dry run, reply skipped", slog.String("post_id", post.ID))
			return nil
		}

		var replyErr error
		comment, replyErr = s.platform.Reply(ctx, post, quote)

		return replyErr
	})
	if err != nil {
		return "", err
	}

	err = runStep(ctx, logger, StepVerify, func() error {
		if !s.dryRun && comment == nil {
			return errNoComment
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	err = runStep(ctx, logger, StepRecord, func() error {
		if s.dryRun {
			return nil
		}

		logger.InfoContext(ctx, "quote sent",
			slog.String("post_id", post.ID),
			slog.String("comment_id", comment.ID),
			slog.String("permalink", comment.Permalink),
		)

		return nil
	})
	if err != nil {
		return "", err
	}

	return quote, nil
}
