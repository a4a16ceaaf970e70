package ratelimiter

import "errors"

// Package-level error definitions for rate limiter construction and lifecycle.
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrAlreadyStarted = errors.New("cleanup already started")
	ErrNotStarted     = errors.New("cleanup not started")
)
