package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
	"github.com/jsamuelsen/daily-quote-bot/internal/platform/logging"
	"github.com/jsamuelsen/daily-quote-bot/internal/ports"
)

// DefaultSlot is the sticky slot that holds the daily discussion post.
const DefaultSlot = 1

// Locator finds the community's daily discussion post.
type Locator struct {
	platform ports.DiscussionPlatform
	slot     int
	marker   string
	logger   *slog.Logger
}

// LocatorConfig contains the locator's dependencies and matching rules.
type LocatorConfig struct {
	Platform ports.DiscussionPlatform

	// Slot is the sticky slot to examine. Zero selects DefaultSlot.
	Slot int

	// Marker is matched case-insensitively against the post title.
	// Empty selects domain.DefaultDiscussionMarker.
	Marker string

	Logger *slog.Logger
}

// NewLocator creates a locator. It panics if Platform is nil.
func NewLocator(cfg LocatorConfig) *Locator {
	if cfg.Platform == nil {
		panic("app: locator requires a platform")
	}

	slot := cfg.Slot
	if slot == 0 {
		slot = DefaultSlot
	}

	marker := cfg.Marker
	if marker == "" {
		marker = domain.DefaultDiscussionMarker
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Locator{
		platform: cfg.Platform,
		slot:     slot,
		marker:   marker,
		logger:   logger,
	}
}

// Find returns the daily discussion post of community.
// An empty slot or a pinned post with another title is reported as
// found=false with a nil error. Other platform failures are returned.
func (l *Locator) Find(ctx context.Context, community string) (*domain.Post, bool, error) {
	logger := logging.FromContextOr(ctx, l.logger)

	post, err := l.platform.Sticky(ctx, community, l.slot)
	if domain.IsNotFound(err) {
		logger.InfoContext(ctx, "daily discussion post not found",
			slog.String("subreddit", community),
			slog.Int("slot", l.slot),
		)

		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("locating daily discussion in r/%s: %w", community, err)
	}

	if !post.TitleContains(l.marker) {
		logger.InfoContext(ctx, "daily discussion post not found",
			slog.String("subreddit", community),
			slog.Int("slot", l.slot),
			slog.String("sticky_title", post.Title),
		)

		return nil, false, nil
	}

	logger.InfoContext(ctx, "daily discussion post found",
		slog.String("title", post.Title),
		slog.String("post_id", post.ID),
	)

	return post, true, nil
}
