package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrValidation,
		ErrForbidden,
		ErrUnavailable,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		id          string
		expectedMsg string
	}{
		{
			name:        "with entity and ID",
			entity:      "sticky",
			id:          "CryptoCurrency#1",
			expectedMsg: `sticky "CryptoCurrency#1" not found`,
		},
		{
			name:        "with entity only",
			entity:      "post",
			expectedMsg: "post not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.entity, notFound.Entity)
			assert.Equal(t, tt.id, notFound.ID)
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("quotes", "at least one quote is required")
	assert.Equal(t, "validation failed for quotes: at least one quote is required", err.Error())
	assert.True(t, IsValidation(err))

	err = NewValidationError("", "bad input")
	assert.Equal(t, "validation failed: bad input", err.Error())
}

func TestForbiddenError(t *testing.T) {
	err := NewForbiddenError("reply", "THREAD_LOCKED")
	assert.Equal(t, `operation "reply" forbidden: THREAD_LOCKED`, err.Error())
	assert.True(t, IsForbidden(err))

	err = NewForbiddenError("authenticate", "")
	assert.Equal(t, `operation "authenticate" forbidden`, err.Error())
}

func TestUnavailableError(t *testing.T) {
	err := NewUnavailableError("reddit", "HTTP 503")
	assert.Equal(t, `service "reddit" unavailable: HTTP 503`, err.Error())
	assert.True(t, IsUnavailable(err))

	err = NewUnavailableError("reddit", "")
	assert.Equal(t, `service "reddit" unavailable`, err.Error())
}

func TestIsHelpers_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("locating post: %w", NewNotFoundError("sticky", "x"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsUnavailable(wrapped))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}
