// ABOUTME: Sentinel errors for the assistant core
// ABOUTME: Callers classify failures with errors.Is and map them to responses
package core

import "errors"

var (
	// ErrRateLimited is returned when a session has exhausted its request quota.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidInput is returned for malformed caller input, before any
	// retrieval or model call is attempted.
	ErrInvalidInput = errors.New("invalid message format")

	// ErrUnavailable is returned when a required external capability (model
	// credentials, corpus snapshot) is missing. The caller sees "service
	// unavailable"; details go to the log.
	ErrUnavailable = errors.New("service unavailable")

	// ErrDimensionMismatch indicates two vectors of different lengths were
	// compared. This is a corpus/build bug, not a user-input problem.
	ErrDimensionMismatch = errors.New("vectors must have the same length")
)
