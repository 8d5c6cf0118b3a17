package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/daily-quote-bot/internal/adapters/http/dto"
	"github.com/jsamuelsen/daily-quote-bot/internal/domain"
	"github.com/jsamuelsen/daily-quote-bot/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
func MapDomainError(err error) (int, *dto.ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	code := dto.ErrorCodeInternal
	message := "an internal error occurred"

	switch {
	case domain.IsNotFound(err):
		code, message = dto.ErrorCodeNotFound, err.Error()
	case domain.IsValidation(err):
		code, message = dto.ErrorCodeValidation, err.Error()
	case domain.IsForbidden(err):
		code, message = dto.ErrorCodeForbidden, err.Error()
	case domain.IsUnavailable(err):
		code, message = dto.ErrorCodeUnavailable, err.Error()
	}

	return dto.HTTPStatusFromCode(code), dto.NewErrorResponse(code, message)
}

// RespondWithError writes an error response, including the trace ID when the
// request is traced.
func RespondWithError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		errResp.TraceID = span.SpanContext().TraceID().String()
	}

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}
