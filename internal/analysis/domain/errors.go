package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrTextTooLong      = errors.New("text too long")
	ErrNoAnalysis       = errors.New("no analysis found")
	ErrCapabilityFailed = errors.New("nlp capability failed")
	ErrTimeout          = errors.New("analysis timed out")
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrUnauthorized     = errors.New("invalid API key")
)

// Error kinds reported to clients.
const (
	KindInvalidRequest   = "invalid_request"
	KindTextTooLong      = "text_too_long"
	KindNoAnalysis       = "no_analysis"
	KindCapabilityFailed = "capability_failed"
	KindTimeout          = "timeout"
	KindCanceled         = "canceled"
	KindRateLimited      = "rate_limited"
	KindUnauthorized     = "unauthorized"
	KindInternal         = "internal"
)

// ErrorBody is the structured error payload.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// KindOf maps err to its client-facing kind.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	case errors.Is(err, ErrTextTooLong):
		return KindTextTooLong
	case errors.Is(err, ErrNoAnalysis):
		return KindNoAnalysis
	case errors.Is(err, ErrCapabilityFailed):
		return KindCapabilityFailed
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	default:
		return KindInternal
	}
}

// NewErrorBody builds the payload for err.
func NewErrorBody(err error) *ErrorBody {
	return &ErrorBody{Kind: KindOf(err), Message: err.Error()}
}
