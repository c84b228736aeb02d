package riot

import "errors"

// Sentinel errors for the Riot adapters.
var (
	ErrNoAPIKey      = errors.New("riot api key not configured")
	ErrUnexpected    = errors.New("unexpected riot api response")
	ErrInvalidRegion = errors.New("invalid region")
)
