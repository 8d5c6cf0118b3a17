package app

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
	"github.com/jsamuelsen/daily-quote-bot/internal/mocks"
)

func TestNewLocator_PanicsWithoutPlatform(t *testing.T) {
	assert.Panics(t, func() {
		NewLocator(LocatorConfig{})
	})
}

func TestNewLocator_Defaults(t *testing.T) {
	l := NewLocator(LocatorConfig{Platform: mocks.NewMockDiscussionPlatform(t)})

	assert.Equal(t, DefaultSlot, l.slot)
	assert.Equal(t, domain.DefaultDiscussionMarker, l.marker)
	assert.NotNil(t, l.logger)
}

func TestLocator_Find(t *testing.T) {
	tests := []struct {
		name      string
		marker    string
		sticky    *domain.Post
		stickyErr error
		wantFound bool
		errCheck  func(error) bool
	}{
		{
			name:      "daily discussion",
			sticky:    &domain.Post{ID: "a", Title: "Daily Discussion - March 5"},
			wantFound: true,
		},
		{
			name:      "marker is case insensitive",
			sticky:    &domain.Post{ID: "b", Title: "DAILY DISCUSSION THREAD"},
			wantFound: true,
		},
		{
			name:   "other pinned post",
			sticky: &domain.Post{ID: "c", Title: "Weekly Roundup"},
		},
		{
			name:      "slot empty",
			stickyErr: domain.NewNotFoundError("sticky post", "r/CryptoCurrency#1"),
		},
		{
			name:      "custom marker",
			marker:    "market news",
			sticky:    &domain.Post{ID: "d", Title: "Market News for Tuesday"},
			wantFound: true,
		},
		{
			name:      "platform unavailable",
			stickyErr: domain.NewUnavailableError("reddit", "timeout"),
			errCheck:  domain.IsUnavailable,
		},
		{
			name:      "session rejected",
			stickyErr: domain.NewForbiddenError("get sticky", "authentication required"),
			errCheck:  domain.IsForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := mocks.NewMockDiscussionPlatform(t)
			platform.EXPECT().Sticky(mock.Anything, "CryptoCurrency", 1).Return(tt.sticky, tt.stickyErr)

			l := NewLocator(LocatorConfig{Platform: platform, Marker: tt.marker, Logger: discardLogger()})

			post, found, err := l.Find(context.Background(), "CryptoCurrency")

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err))
				assert.False(t, found)
				assert.Nil(t, post)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)

			if tt.wantFound {
				assert.Equal(t, tt.sticky, post)
			} else {
				assert.Nil(t, post)
			}
		})
	}
}

func TestLocator_Find_UsesConfiguredSlot(t *testing.T) {
	platform := mocks.NewMockDiscussionPlatform(t)
	platform.EXPECT().Sticky(mock.Anything, "golang", 2).
		Return(&domain.Post{Title: "Daily Discussion"}, nil)

	l := NewLocator(LocatorConfig{Platform: platform, Slot: 2, Logger: discardLogger()})

	_, found, err := l.Find(context.Background(), "golang")

	require.NoError(t, err)
	assert.True(t, found)
}

func TestLocator_Find_LogsNotFound(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	platform := mocks.NewMockDiscussionPlatform(t)
	platform.EXPECT().Sticky(mock.Anything, "CryptoCurrency", 1).
		Return(&domain.Post{Title: "Market News"}, nil)

	l := NewLocator(LocatorConfig{Platform: platform, Logger: logger})

	_, found, err := l.Find(context.Background(), "CryptoCurrency")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Contains(t, buf.String(), "daily discussion post not found")
	assert.Contains(t, buf.String(), `sticky_title="Market News"`)
}
