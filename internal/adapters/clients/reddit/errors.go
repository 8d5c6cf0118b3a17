package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
)

// errorResponse is Reddit's error body, e.g. {"reason": "private", "message": "Forbidden", "error": 403}.
type errorResponse struct {
	Message     string `json:"message"`
	Reason      string `json:"reason"`
	Explanation string `json:"explanation"`
}

func (e *errorResponse) text() string {
	switch {
	case e.Explanation != "":
		return e.Explanation
	case e.Reason != "" && e.Message != "":
		return e.Message + " (" + e.Reason + ")"
	case e.Reason != "":
		return e.Reason
	default:
		return e.Message
	}
}

// parseErrorResponse attempts to parse an error response body.
// Returns nil if the body is empty or cannot be parsed.
func parseErrorResponse(body io.Reader) *errorResponse {
	if body == nil {
		return nil
	}

	var errResp errorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.text() == "" {
		return nil
	}

	return &errResp
}

// Reply error codes from json.errors that mean the bot may not post here.
var forbiddenCodes = map[string]bool{
	"THREAD_LOCKED":         true,
	"TOO_OLD":               true,
	"DELETED_LINK":          true,
	"USER_REQUIRED":         true,
	"SUBREDDIT_NOTALLOWED":  true,
	"BANNED_FROM_SUBREDDIT": true,
	"USER_BLOCKED":          true,
}

// mapClientError translates a failed request (no response) to a domain error.
// OAuth token failures surface here because the token is fetched inside the transport.
func mapClientError(err error, operation string) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil && retrieveErr.Response.StatusCode >= http.StatusInternalServerError {
			return domain.NewUnavailableError(serviceName,
				fmt.Sprintf("token endpoint returned %d during %s", retrieveErr.Response.StatusCode, operation))
		}

		return domain.NewForbiddenError(operation, "credentials rejected: "+retrieveErr.Error())
	}

	if isMissingToken(err) {
		return domain.NewForbiddenError(operation, "credentials rejected: no access token issued")
	}

	return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s failed: %v", operation, err))
}

// isMissingToken recognises the oauth2 error for a 200 response without a token,
// which is how Reddit answers a wrong username or password. oauth2 exports no
// sentinel for it.
func isMissingToken(err error) bool {
	return strings.Contains(err.Error(), "server response missing access_token")
}

// mapStatusCode translates HTTP status codes to domain errors.
func mapStatusCode(resp *http.Response, operation, entityID string) error {
	message := defaultMessageForStatus(resp.StatusCode, operation)
	if errResp := parseErrorResponse(resp.Body); errResp != nil {
		message = errResp.text()
	}

	switch status := resp.StatusCode; status {
	case http.StatusNotFound:
		return domain.NewNotFoundError(entityKind(operation), entityID)

	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.NewValidationError("", message)

	case http.StatusForbidden:
		return domain.NewForbiddenError(operation, message)

	case http.StatusUnauthorized:
		return domain.NewForbiddenError(operation, "authentication required")

	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")

	default:
		if status >= http.StatusInternalServerError {
			return domain.NewUnavailableError(serviceName, message)
		}

		return domain.NewValidationError("", message)
	}
}

// mapAPIErrors translates the json.errors array of a reply response.
// Only the first error is reported.
func mapAPIErrors(errs []apiError, operation string) error {
	if len(errs) == 0 {
		return nil
	}

	first := errs[0]

	switch {
	case first.Code == "RATELIMIT":
		return domain.NewUnavailableError(serviceName, "rate limited: "+first.Message)
	case forbiddenCodes[first.Code]:
		return domain.NewForbiddenError(operation, first.String())
	default:
		return domain.NewValidationError(first.Field, first.String())
	}
}

// defaultMessageForStatus returns a default message for an HTTP status.
func defaultMessageForStatus(status int, operation string) string {
	switch status {
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusForbidden:
		return "access denied"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	default:
		return fmt.Sprintf("%s failed with status %d", operation, status)
	}
}

func entityKind(operation string) string {
	switch operation {
	case opSticky:
		return "sticky post"
	case opReply, opByID:
		return "post"
	default:
		return "resource"
	}
}
