package domain

import "strings"

// DefaultDiscussionMarker is the title fragment that identifies the daily discussion post.
const DefaultDiscussionMarker = "daily discussion"

// Post is a submission on the platform, typically a community's pinned post.
type Post struct {
	// ID is the platform's short identifier (e.g. "1abc2d").
	ID string

	// Fullname is the typed identifier used as a reply target (e.g. "t3_1abc2d").
	Fullname string

	Title     string
	Subreddit string
	Permalink string
}

// Comment is a reply created by the bot.
type Comment struct {
	ID        string
	Fullname  string
	Permalink string
}

// TitleContains reports whether the post title contains marker, ignoring case.
// An empty marker never matches.
func (p *Post) TitleContains(marker string) bool {
	if p == nil || marker == "" {
		return false
	}

	return strings.Contains(strings.ToLower(p.Title), strings.ToLower(marker))
}

// IsDailyDiscussion reports whether the post is the daily discussion thread.
func (p *Post) IsDailyDiscussion() bool {
	return p.TitleContains(DefaultDiscussionMarker)
}
