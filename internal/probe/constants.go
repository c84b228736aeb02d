package probe

import "time"

// Defaults applied by Run when the config leaves a field zero.
const (
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second

	// AwaitTimeout bounds a single GET /spell/await. It sits above the
	// server's default wait ceiling.
	AwaitTimeout = 7 * time.Minute

	PercentageMultiplier = 100
)

// Report outcomes.
const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)
