package spell

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrInvalidCatalog = errors.New("invalid spell catalog")
	ErrUnknownLocale  = errors.New("unknown spell locale")
)
