package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// A send runs as a staged round: validate → select → reply → verify → record.
// Nothing is recorded as sent until the platform has confirmed the reply,
// so a failed reply never updates the last-sent quote.

// RoundStep names one stage of a send.
type RoundStep string

// Round steps, in execution order.
const (
	StepValidate RoundStep = "validate"
	StepSelect   RoundStep = "select"
	StepReply    RoundStep = "reply"
	StepVerify   RoundStep = "verify"
	StepRecord   RoundStep = "record"
)

// RoundError wraps errors with the step where they occurred.
type RoundError struct {
	Step  RoundStep
	Cause error
}

// Error implements the error interface.
func (e *RoundError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *RoundError) Unwrap() error {
	return e.Cause
}

// StepOf extracts the failed step from a round error.
func StepOf(err error) (RoundStep, bool) {
	var roundErr *RoundError
	if errors.As(err, &roundErr) {
		return roundErr.Step, true
	}

	return "", false
}

// runStep logs a step's start and outcome and tags any error with the step.
func runStep(ctx context.Context, logger *slog.Logger, step RoundStep, fn func() error) error {
	logger.DebugContext(ctx, "starting step", slog.String("step", string(step)))

	if err := fn(); err != nil {
		logger.WarnContext(ctx, "step failed",
			slog.String("step", string(step)),
			slog.Any("error", err),
		)

		return &RoundError{Step: step, Cause: err}
	}

	return nil
}
