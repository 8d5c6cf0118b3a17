// Package reddit adapts the Reddit OAuth API to ports.DiscussionPlatform.
// Reddit listings, things and json.errors arrays stay inside this package;
// callers only see domain types and domain errors.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/jsamuelsen/daily-quote-bot/internal/adapters/clients"
	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
	"github.com/jsamuelsen/daily-quote-bot/internal/platform/config"
	"github.com/jsamuelsen/daily-quote-bot/internal/platform/logging"
	"github.com/jsamuelsen/daily-quote-bot/internal/ports"
)

const serviceName = "reddit"

// Operation names used in errors and logs.
const (
	opAuthenticate = "authenticate"
	opSticky       = "get sticky"
	opByID         = "get post"
	opReply        = "reply"
	opCheck        = "check session"
)

// maxErrorBody bounds how much of an unexpected response is kept for logging.
const maxErrorBody = 4 << 10

// submissionIDPattern pulls the submission id out of a comments permalink.
var submissionIDPattern = regexp.MustCompile(`/comments/([a-z0-9]+)`)

// Compile-time interface checks.
var (
	_ ports.DiscussionPlatform = (*Client)(nil)
	_ ports.HealthChecker      = (*Client)(nil)
)

// Config contains what the adapter needs to reach Reddit as the bot account.
type Config struct {
	Credentials domain.Credentials

	// AuthURL hosts the token endpoint (https://www.reddit.com).
	AuthURL string

	// APIURL hosts the OAuth API (https://oauth.reddit.com).
	APIURL string

	// Version replaces {version} in the credentials' user agent.
	Version string

	Timeout time.Duration
	Pool    config.TransportConfig

	// Transport overrides the base transport for both token and API requests.
	Transport http.RoundTripper

	Logger *slog.Logger
}

// Client implements ports.DiscussionPlatform against the Reddit OAuth API.
type Client struct {
	api    *clients.Client
	logger *slog.Logger
}

// New creates a Reddit adapter. No request is made until Authenticate.
func New(cfg Config) (*Client, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, fmt.Errorf("reddit credentials: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userAgent := cfg.Credentials.UserAgentFor(cfg.Version)

	// Token and API requests share one connection pool.
	var base http.RoundTripper = clients.NewTransport(cfg.Pool)
	if cfg.Transport != nil {
		base = cfg.Transport
	}

	tokenHTTP := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &userAgentTransport{userAgent: userAgent, base: base},
	}

	tokens := newTokenSource(
		strings.TrimSuffix(cfg.AuthURL, "/"),
		cfg.Credentials.ClientID,
		cfg.Credentials.ClientSecret,
		cfg.Credentials.Username,
		cfg.Credentials.Password,
		tokenHTTP,
	)

	api, err := clients.New(&clients.Config{
		BaseURL:     cfg.APIURL,
		ServiceName: serviceName,
		UserAgent:   userAgent,
		Timeout:     cfg.Timeout,
		Base:        base,
		Transport: func(rt http.RoundTripper) http.RoundTripper {
			return &oauth2.Transport{Source: tokens, Base: rt}
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating reddit client: %w", err)
	}

	return &Client{
		api:    api,
		logger: logger.With(slog.String("component", "reddit")),
	}, nil
}

// Authenticate obtains an access token and confirms the session by fetching
// the account identity.
func (c *Client) Authenticate(ctx context.Context) error {
	name, err := c.me(ctx, opAuthenticate)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).InfoContext(ctx, "authenticated", slog.String("username", name))

	return nil
}

// Sticky returns the community's pinned post at slot (1-based).
// Reddit answers with a redirect to the post's comments page; the id is
// taken from the Location and the post fetched by id.
func (c *Client) Sticky(ctx context.Context, community string, slot int) (*domain.Post, error) {
	if strings.TrimSpace(community) == "" {
		return nil, domain.NewValidationError("community", "is required")
	}

	if slot < 1 {
		return nil, domain.NewValidationError("slot", "must be 1 or greater")
	}

	path := fmt.Sprintf("/r/%s/about/sticky?num=%d&raw_json=1", url.PathEscape(community), slot)
	entityID := fmt.Sprintf("r/%s#%d", community, slot)

	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, mapClientError(err, opSticky)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case isRedirect(resp.StatusCode):
		id, ok := submissionID(resp.Header.Get("Location"))
		if !ok {
			return nil, domain.NewNotFoundError("sticky post", entityID)
		}

		return c.postByID(ctx, id)

	case resp.StatusCode == http.StatusOK:
		return c.decodeCommentsPage(ctx, resp.Body, entityID)

	default:
		return nil, mapStatusCode(resp, opSticky, entityID)
	}
}

// Reply posts text as a top-level comment on post. A response without a
// created comment yields (nil, nil).
func (c *Client) Reply(ctx context.Context, post *domain.Post, text string) (*domain.Comment, error) {
	if post == nil || post.Fullname == "" {
		return nil, domain.NewValidationError("post", "reply target is required")
	}

	if text == "" {
		return nil, domain.NewValidationError("text", "must not be empty")
	}

	form := url.Values{
		"api_type": {"json"},
		"thing_id": {post.Fullname},
		"text":     {text},
	}

	resp, err := c.api.PostForm(ctx, "/api/comment", form)
	if err != nil {
		return nil, mapClientError(err, opReply)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, mapStatusCode(resp, opReply, post.ID)
	}

	var body commentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding reply response: %w", err)
	}

	if err := mapAPIErrors(parseAPIErrors(body.JSON.Errors), opReply); err != nil {
		return nil, err
	}

	comment := translateComment(&body)
	if comment == nil {
		c.logger.WarnContext(ctx, "reply accepted without a comment", slog.String("post_id", post.ID))
		return nil, nil //nolint:nilnil // documented on ports.DiscussionPlatform.Reply
	}

	c.logger.Log(ctx, logging.LevelTrace, "reply created",
		slog.String("post_id", post.ID),
		slog.String("comment_id", comment.ID))

	return comment, nil
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *Client) Name() string {
	return serviceName
}

// Check confirms the session is still usable.
// Implements ports.HealthChecker.
func (c *Client) Check(ctx context.Context) error {
	_, err := c.me(ctx, opCheck)
	return err
}

func (c *Client) me(ctx context.Context, operation string) (string, error) {
	resp, err := c.api.Get(ctx, "/api/v1/me")
	if err != nil {
		return "", mapClientError(err, operation)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", mapStatusCode(resp, operation, "")
	}

	var body meResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding identity: %w", err)
	}

	if body.Name == "" {
		return "", domain.NewForbiddenError(operation, "session has no user")
	}

	return body.Name, nil
}

func (c *Client) postByID(ctx context.Context, id string) (*domain.Post, error) {
	path := "/by_id/" + kindLink + "_" + id + "?raw_json=1"

	resp, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, mapClientError(err, opByID)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, mapStatusCode(resp, opByID, id)
	}

	var page listing
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding post listing: %w", err)
	}

	if len(page.Data.Children) == 0 {
		return nil, domain.NewNotFoundError("post", id)
	}

	return c.translate(ctx, &page.Data.Children[0])
}

// decodeCommentsPage handles a followed redirect: the comments page is a pair
// of listings, the first holding the post.
func (c *Client) decodeCommentsPage(ctx context.Context, body io.Reader, entityID string) (*domain.Post, error) {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading sticky response: %w", err)
	}

	var pages []listing
	if err := json.Unmarshal(raw, &pages); err != nil {
		c.logger.Log(ctx, logging.LevelTrace, "unexpected sticky payload",
			slog.String("body", string(raw[:min(len(raw), maxErrorBody)])))
		return nil, fmt.Errorf("decoding sticky response: %w", err)
	}

	if len(pages) == 0 || len(pages[0].Data.Children) == 0 {
		return nil, domain.NewNotFoundError("sticky post", entityID)
	}

	return c.translate(ctx, &pages[0].Data.Children[0])
}

func (c *Client) translate(ctx context.Context, t *thing) (*domain.Post, error) {
	post, err := translatePost(t)
	if err != nil {
		return nil, fmt.Errorf("translating post: %w", err)
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated external DTO to domain",
		slog.String("post_id", post.ID),
		slog.String("title", post.Title))

	return post, nil
}

func isRedirect(status int) bool {
	return status >= http.StatusMultipleChoices && status < http.StatusBadRequest
}

// submissionID extracts the id from a Location such as
// https://oauth.reddit.com/r/CryptoCurrency/comments/1abc2d/daily_discussion/.
func submissionID(location string) (string, bool) {
	m := submissionIDPattern.FindStringSubmatch(location)
	if m == nil {
		return "", false
	}

	return m[1], true
}
