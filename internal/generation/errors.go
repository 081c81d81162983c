// Package generation orchestrates planning, prompt rendering, the generative
// backend call, validation and the bounded retry for one request.
package generation

import "fmt"

// UpstreamTimeoutError indicates the generative backend exceeded its time
// bound. Retryable from the caller's point of view.
type UpstreamTimeoutError struct {
	Cause error
}

func (e *UpstreamTimeoutError) Error() string {
	return fmt.Sprintf("generation backend timed out: %v", e.Cause)
}

func (e *UpstreamTimeoutError) Unwrap() error {
	return e.Cause
}

// InvalidUpstreamResponseError indicates the backend returned something that
// is not the structured data the contract requires, even after the retry.
type InvalidUpstreamResponseError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *InvalidUpstreamResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid upstream response at %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid upstream response at %s: %s", e.Stage, e.Message)
}

func (e *InvalidUpstreamResponseError) Unwrap() error {
	return e.Cause
}

// PlanningError indicates an internal planning failure. Planning is designed
// to degrade rather than fail, so seeing this is a bug.
type PlanningError struct {
	Message string
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("planning error: %s", e.Message)
}
