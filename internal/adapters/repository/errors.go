package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrChampionNotFound = errors.New("champion not found")
	ErrInvalidSummoner  = errors.New("invalid summoner")
	ErrClosed           = errors.New("store closed")
)
