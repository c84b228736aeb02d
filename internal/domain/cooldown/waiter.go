package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/spelltimer/internal/domain/spell"
	"github.com/okian/spelltimer/pkg/logger"
	"github.com/okian/spelltimer/pkg/metrics"
)

// Default polling parameters.
const (
	DefaultPollInterval = time.Second
	DefaultCeiling      = 6 * time.Minute
)

// Expiry is the result of a wait that saw its cooldown run out.
type Expiry struct {
	SummonerID int64
	Target     string
	Spell      string
	Message    string
	Waited     time.Duration
	Polls      int
}

// Waiter blocks callers until a cooldown entry disappears from the Store.
// Each Await runs on the caller's goroutine and parks on a ticker between
// polls; nothing is shared between waits.
type Waiter struct {
	store    Store
	catalog  *spell.Catalog
	interval time.Duration
	ceiling  time.Duration
	logger   logger.Logger
}

// WaiterOption configures a Waiter.
type WaiterOption func(*Waiter)

// WithPollInterval sets how often the store is checked.
func WithPollInterval(d time.Duration) WaiterOption {
	return func(w *Waiter) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithCeiling sets the longest a wait may block before it fails.
func WithCeiling(d time.Duration) WaiterOption {
	return func(w *Waiter) {
		if d > 0 {
			w.ceiling = d
		}
	}
}

// WithWaiterCatalog sets the catalog used to phrase expiry messages.
func WithWaiterCatalog(c *spell.Catalog) WaiterOption {
	return func(w *Waiter) {
		if c != nil {
			w.catalog = c
		}
	}
}

// WithWaiterLogger sets the waiter logger.
func WithWaiterLogger(l logger.Logger) WaiterOption {
	return func(w *Waiter) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWaiter builds a Waiter polling every second with a six minute ceiling.
func NewWaiter(store Store, opts ...WaiterOption) *Waiter {
	w := &Waiter{
		store:    store,
		catalog:  spell.Korean,
		interval: DefaultPollInterval,
		ceiling:  DefaultCeiling,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Interval returns the poll interval.
func (w *Waiter) Interval() time.Duration { return w.interval }

// Ceiling returns the wait ceiling.
func (w *Waiter) Ceiling() time.Duration { return w.ceiling }

// Await polls the store until key is gone and returns an expiry message.
// An absent key returns immediately. If the key is still present when the
// ceiling elapses the wait fails with ErrWaitTimeout; if ctx ends first it
// fails with ErrWaitCanceled. Both wrap ErrInternal.
func (w *Waiter) Await(ctx context.Context, key Key) (Expiry, error) {
	if err := key.Validate(); err != nil {
		return Expiry{}, err
	}

	start := time.Now()
	metrics.IncActiveWaiters()
	defer metrics.DecActiveWaiters()

	ceiling := time.NewTimer(w.ceiling)
	defer ceiling.Stop()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	id := key.String()
	polls := 0
	for {
		polls++
		metrics.RecordWaitPoll()
		exists, err := w.store.Exists(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return Expiry{}, w.canceled(ctx, key, start)
			}
			metrics.RecordWait("error", time.Since(start))
			w.logger.Error(ctx, "cooldown wait failed", logger.String("key", id), logger.Error(err))
			return Expiry{}, internal(fmt.Errorf("%w: %w", ErrStoreUnavailable, err))
		}
		if !exists {
			waited := time.Since(start)
			metrics.RecordWait("expired", waited)
			w.logger.Debug(ctx, "cooldown expired",
				logger.String("key", id),
				logger.Duration("waited", waited),
				logger.Int("polls", polls),
			)
			return Expiry{
				SummonerID: key.SummonerID,
				Target:     key.Target,
				Spell:      key.Spell,
				Message:    w.catalog.ReadyMessage(key.Target, key.Spell),
				Waited:     waited,
				Polls:      polls,
			}, nil
		}

		select {
		case <-ctx.Done():
			return Expiry{}, w.canceled(ctx, key, start)
		case <-ceiling.C:
			waited := time.Since(start)
			metrics.RecordWait("timeout", waited)
			w.logger.Warn(ctx, "cooldown still active at wait ceiling",
				logger.String("key", id),
				logger.Duration("ceiling", w.ceiling),
			)
			return Expiry{}, internal(ErrWaitTimeout)
		case <-ticker.C:
		}
	}
}

func (w *Waiter) canceled(ctx context.Context, key Key, start time.Time) error {
	metrics.RecordWait("canceled", time.Since(start))
	w.logger.Debug(ctx, "cooldown wait canceled", logger.String("key", key.String()))
	return internal(fmt.Errorf("%w: %w", ErrWaitCanceled, context.Cause(ctx)))
}
