package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("ratelimiter: invalid configuration")
	ErrInvalidTokenCount = errors.New("ratelimiter: invalid token count")
	ErrAlreadyStarted    = errors.New("ratelimiter: cleanup already started")
	ErrNotStarted        = errors.New("ratelimiter: cleanup not started")
)
