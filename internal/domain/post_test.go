package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPost_IsDailyDiscussion(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Daily Discussion - March 5", true},
		{"Daily Discussion Thread", true},
		{"[Serious] DAILY DISCUSSION for today", true},
		{"daily discussion", true},
		{"Weekly Roundup", false},
		{"Market News", false},
		{"Daily  Discussion", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			post := &Post{Title: tt.title}
			assert.Equal(t, tt.want, post.IsDailyDiscussion())
		})
	}
}

func TestPost_TitleContains(t *testing.T) {
	post := &Post{Title: "Weekly Roundup - Week 12"}

	assert.True(t, post.TitleContains("weekly roundup"))
	assert.False(t, post.TitleContains(""))

	var nilPost *Post
	assert.False(t, nilPost.TitleContains("weekly"))
}
