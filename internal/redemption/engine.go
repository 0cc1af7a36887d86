package redemption

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/QRHunt_Go/internal/clock"
	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/event"
	"github.com/osse101/QRHunt_Go/internal/logger"
	"github.com/osse101/QRHunt_Go/internal/repository"
)

// Catalog is the read-only view of the catalog the engine needs.
type Catalog interface {
	Lookup(scanCode string) (itemID string, ok bool)
	Entry(itemID string) (domain.CatalogEntry, bool)
	Entries() []domain.CatalogEntry
}

// ErrStorePanic wraps a panic recovered from the collection store.
var ErrStorePanic = errors.New("collection store panic")

// Engine turns one raw scan payload into an Outcome.
// It holds no per-user state and is safe for concurrent use.
type Engine struct {
	catalog Catalog
	store   repository.Collection
	bus     event.Bus
	clock   clock.Clock
	timeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithBus publishes every outcome on bus.
func WithBus(bus event.Bus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithClock overrides the clock used to time redemptions.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithTimeout bounds each store mutation. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine creates an Engine over a catalog and a collection store.
func NewEngine(cat Catalog, store repository.Collection, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		store:   store,
		clock:   clock.NewReal(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine resolves codes against.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}

// Decide resolves rawPayload for caller.
//
// Unknown codes yield InvalidCode without touching the store. Known codes are
// appended atomically; every error, including a recovered store panic, comes back
// as a Failure outcome. The store call is detached from ctx cancellation and
// bounded by the engine timeout, so a caller that goes away does not abort a
// mutation already in flight.
func (e *Engine) Decide(ctx context.Context, caller domain.Identity, rawPayload string) domain.Outcome {
	start := e.clock.Now()
	log := logger.FromContext(ctx)

	var outcome domain.Outcome
	if itemID, ok := e.catalog.Lookup(rawPayload); ok {
		outcome = e.append(ctx, caller, itemID)
	} else {
		outcome = domain.InvalidCode(rawPayload)
	}

	duration := e.clock.Since(start)
	if outcome.IsFailure() {
		log.Warn(LogMsgRedemptionFailed,
			"user_id", caller.UserID,
			"reason", outcome.Reason,
			"error", outcome.Err,
			"duration", duration)
	} else {
		log.Info(LogMsgRedemptionDecided,
			"user_id", caller.UserID,
			"outcome", outcome.String(),
			"duration", duration)
	}

	e.publish(ctx, caller, outcome, duration)
	return outcome
}

type appendResult struct {
	added bool
	err   error
}

func (e *Engine) append(ctx context.Context, caller domain.Identity, itemID string) domain.Outcome {
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	done := make(chan appendResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(ctx).Error(LogMsgStorePanicked, "panic", r, "item_id", itemID)
				done <- appendResult{err: fmt.Errorf(ErrMsgStorePanicFmt, ErrStorePanic, r)}
			}
		}()
		added, err := e.store.AppendIfAbsent(storeCtx, caller, caller.UserID, itemID)
		done <- appendResult{added: added, err: err}
	}()

	var res appendResult
	select {
	case res = <-done:
	case <-storeCtx.Done():
		// The store ignored its deadline; the mutation may still land later.
		res.err = storeCtx.Err()
	}

	if res.err != nil {
		return domain.Failure(normalize(res.err))
	}
	if res.added {
		return domain.Added(itemID)
	}
	return domain.AlreadyOwned(itemID)
}

// normalize tags a bare context deadline as a timeout so classification
// does not depend on how each store wraps it.
func normalize(err error) error {
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrTimeout) {
		return fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	}
	return err
}

func (e *Engine) publish(ctx context.Context, caller domain.Identity, outcome domain.Outcome, duration time.Duration) {
	if e.bus == nil {
		return
	}
	evt := event.NewRedemptionCompletedEvent(caller.UserID, outcome, duration, logger.GetRequestID(ctx))
	if err := e.bus.Publish(context.WithoutCancel(ctx), evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "error", err)
	}
}
