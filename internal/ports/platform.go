// Package ports defines the interfaces the poster loop depends on.
// Adapters implement them; the app layer never sees HTTP, OAuth or JSON.
//
// Port rules:
//   - context first, so callers control cancellation
//   - domain types in and out, never platform DTOs
//   - failures reported as domain errors (ErrNotFound, ErrForbidden, ErrUnavailable)
package ports

import (
	"context"

	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
)

// DiscussionPlatform is the external discussion site the bot posts to.
type DiscussionPlatform interface {
	// Authenticate establishes a session with the configured credentials.
	// Returns domain.ErrForbidden when the platform rejects them.
	Authenticate(ctx context.Context) error

	// Sticky returns the community's pinned post at the given slot (1-based).
	// Returns domain.ErrNotFound when nothing is pinned at that slot.
	Sticky(ctx context.Context, community string, slot int) (*domain.Post, error)

	// Reply posts text as a top-level comment on post.
	// A nil comment with a nil error means the platform accepted the request
	// but reported no comment; callers treat that as a failed send.
	Reply(ctx context.Context, post *domain.Post, text string) (*domain.Comment, error)
}
