package reddit

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
)

// External DTOs. Never returned outside this package.

// listing is the envelope Reddit wraps collections in.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

// thing is one typed entry of a listing.
type thing struct {
	Kind string   `json:"kind"`
	Data linkData `json:"data"`
}

// linkData holds the submission (t3) fields the bot needs.
type linkData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	Subreddit string `json:"subreddit"`
	Permalink string `json:"permalink"`
	Stickied  bool   `json:"stickied"`
}

// commentResponse is the api_type=json reply to POST /api/comment.
type commentResponse struct {
	JSON struct {
		Errors [][]any `json:"errors"`
		Data   struct {
			Things []struct {
				Kind string `json:"kind"`
				Data struct {
					ID        string `json:"id"`
					Name      string `json:"name"`
					Permalink string `json:"permalink"`
				} `json:"data"`
			} `json:"things"`
		} `json:"data"`
	} `json:"json"`
}

// meResponse is the subset of /api/v1/me used to confirm the session.
type meResponse struct {
	Name string `json:"name"`
}

const (
	kindLink    = "t3"
	kindComment = "t1"
)

// translatePost converts a listing child to a domain Post.
func translatePost(t *thing) (*domain.Post, error) {
	if t.Kind != kindLink {
		return nil, fmt.Errorf("unexpected thing kind %q", t.Kind)
	}

	if t.Data.ID == "" {
		return nil, domain.NewValidationError("id", "missing in listing")
	}

	fullname := t.Data.Name
	if fullname == "" {
		fullname = kindLink + "_" + t.Data.ID
	}

	return &domain.Post{
		ID:        t.Data.ID,
		Fullname:  fullname,
		Title:     t.Data.Title,
		Subreddit: t.Data.Subreddit,
		Permalink: t.Data.Permalink,
	}, nil
}

// translateComment extracts the created comment. It returns nil when Reddit
// reported no t1 thing with an id.
func translateComment(resp *commentResponse) *domain.Comment {
	for _, t := range resp.JSON.Data.Things {
		if t.Kind != kindComment || t.Data.ID == "" {
			continue
		}

		fullname := t.Data.Name
		if fullname == "" {
			fullname = kindComment + "_" + t.Data.ID
		}

		return &domain.Comment{
			ID:        t.Data.ID,
			Fullname:  fullname,
			Permalink: t.Data.Permalink,
		}
	}

	return nil
}

// apiError is one [code, message, field] triple from a json.errors array.
type apiError struct {
	Code    string
	Message string
	Field   string
}

func parseAPIErrors(raw [][]any) []apiError {
	out := make([]apiError, 0, len(raw))

	for _, triple := range raw {
		var e apiError
		if len(triple) > 0 {
			e.Code = str(triple[0])
		}
		if len(triple) > 1 {
			e.Message = str(triple[1])
		}
		if len(triple) > 2 {
			e.Field = str(triple[2])
		}
		out = append(out, e)
	}

	return out
}

func str(v any) string {
	if v == nil {
		return ""
	}

	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}

func (e apiError) String() string {
	return strings.TrimSpace(e.Code + ": " + e.Message)
}
