package service

import "errors"

// Sentinel errors returned by Service.
var (
	ErrNotStarted        = errors.New("service not started")
	ErrMatchFeedDisabled = errors.New("live match data comes from the riot api; manual matches are disabled")
	ErrInvalidMatch      = errors.New("invalid match")
)
