package cooldown

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Registrar and Waiter wraps exactly one
// of these so callers can classify it with errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
	ErrInvalid  = errors.New("invalid request")
)

// Reasons, wrapped together with a kind.
var (
	ErrSummonerNotFound   = errors.New("summoner not found")
	ErrMatchNotFound      = errors.New("no live match for summoner")
	ErrTeamNotFound       = errors.New("requester team not found in match")
	ErrTargetNotMentioned = errors.New("no enemy champion mentioned")
	ErrSpellNotMentioned  = errors.New("no recognized spell mentioned")
	ErrInvalidKey         = errors.New("cooldown key needs summoner id, target and spell")
	ErrWaitCanceled       = errors.New("cooldown wait canceled")
	ErrWaitTimeout        = errors.New("cooldown still active at wait ceiling")
	ErrStoreUnavailable   = errors.New("cooldown store unavailable")
)

func notFound(reason error) error {
	return fmt.Errorf("%w: %w", ErrNotFound, reason)
}

func internal(reason error) error {
	return fmt.Errorf("%w: %w", ErrInternal, reason)
}

func invalid(reason error) error {
	return fmt.Errorf("%w: %w", ErrInvalid, reason)
}
