// Package scan turns a continuous stream of decoded camera payloads into at
// most one redemption at a time per device.
package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/QRHunt_Go/internal/clock"
	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/event"
	"github.com/osse101/QRHunt_Go/internal/logger"
	"github.com/osse101/QRHunt_Go/internal/session"
)

// ErrClosed is returned by Run once the session has been closed.
var ErrClosed = errors.New(ErrMsgSessionClosed)

// Redeemer decides one payload. *redemption.Engine satisfies it.
type Redeemer interface {
	Decide(ctx context.Context, caller domain.Identity, rawPayload string) domain.Outcome
}

// OutcomeListener receives every outcome the session produces.
type OutcomeListener func(domain.Outcome)

// Session serializes redemptions for one device.
//
// A single busy flag guards the engine: payloads offered while a redemption is
// in flight are dropped, never queued. After an outcome is delivered, payloads
// are also dropped until the debounce window has elapsed on the injected clock.
type Session struct {
	engine   Redeemer
	clock    clock.Clock
	debounce time.Duration
	bus      event.Bus
	listener OutcomeListener

	mu         sync.Mutex
	busy       bool
	closed     bool
	quietUntil time.Time
	identity   domain.Identity
	signedIn   bool
	sub        *session.Subscription
	inflight   sync.WaitGroup
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used for the debounce window.
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithDebounce sets the quiet window after each outcome. Negative values mean zero.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = max(d, 0) }
}

// WithBus reports dropped payloads on bus.
func WithBus(bus event.Bus) Option {
	return func(s *Session) { s.bus = bus }
}

// WithListener registers the outcome listener.
func WithListener(fn OutcomeListener) Option {
	return func(s *Session) { s.listener = fn }
}

// New creates a session bound to the identity held by auth.
// It subscribes to auth immediately and unsubscribes on Close.
func New(engine Redeemer, auth *session.Context, opts ...Option) *Session {
	s := &Session{
		engine:   engine,
		clock:    clock.NewReal(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sub = auth.Subscribe(s.onAuthChange)
	return s
}

func (s *Session) onAuthChange(id domain.Identity, signedIn bool) {
	s.mu.Lock()
	s.identity = id
	s.signedIn = signedIn
	s.mu.Unlock()
}

// Offer hands one decoded payload to the session and reports whether it was
// accepted. Accepted payloads are redeemed on a separate goroutine and the
// outcome goes to the listener. A payload offered while signed out yields
// Failure{unauthorized} without reaching the engine.
func (s *Session) Offer(ctx context.Context, payload string) bool {
	if payload == "" {
		s.drop(ctx, DropReasonEmpty)
		return false
	}

	s.mu.Lock()
	if reason, ok := s.admitLocked(); !ok {
		s.mu.Unlock()
		s.drop(ctx, reason)
		return false
	}
	s.busy = true
	caller, signedIn := s.identity, s.signedIn
	s.inflight.Add(1)
	s.mu.Unlock()

	scanned := domain.ScanEvent{RawPayload: payload, Timestamp: s.clock.Now()}
	logger.FromContext(ctx).Debug(LogMsgPayloadAccepted, "user_id", caller.UserID, "payload", scanned.RawPayload)

	if !signedIn {
		logger.FromContext(ctx).Info(LogMsgSignedOut)
		s.finish(domain.Failure(fmt.Errorf("%w: %s", domain.ErrUnauthorized, ErrMsgNotSignedIn)))
		return true
	}

	go func() {
		s.finish(s.engine.Decide(ctx, caller, scanned.RawPayload))
	}()
	return true
}

// admitLocked reports whether a new payload may start. Callers hold s.mu.
func (s *Session) admitLocked() (string, bool) {
	switch {
	case s.closed:
		return DropReasonClosed, false
	case s.busy:
		return DropReasonBusy, false
	case s.clock.Now().Before(s.quietUntil):
		return DropReasonDebounce, false
	}
	return "", true
}

// finish delivers outcome, then clears busy and opens the debounce window.
func (s *Session) finish(outcome domain.Outcome) {
	defer s.inflight.Done()

	s.mu.Lock()
	listener := s.listener
	closed := s.closed
	s.mu.Unlock()

	if closed {
		logger.Debug(LogMsgOutcomeDiscard, "outcome", outcome.String())
	} else if listener != nil {
		listener(outcome)
	}

	s.mu.Lock()
	s.busy = false
	s.quietUntil = s.clock.Now().Add(s.debounce)
	s.mu.Unlock()
}

func (s *Session) drop(ctx context.Context, reason string) {
	logger.FromContext(ctx).Debug(LogMsgPayloadDropped, "reason", reason)
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event.NewScanDroppedEvent(reason)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "error", err)
	}
}

// Busy reports whether a redemption is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Run feeds frames through Offer until frames is closed, ctx is done or the
// session is closed.
func (s *Session) Run(ctx context.Context, frames <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-frames:
			if !ok {
				return nil
			}
			if s.isClosed() {
				return ErrClosed
			}
			s.Offer(ctx, payload)
		}
	}
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close tears the session down. A redemption already in flight still reaches
// the store, but its outcome is discarded. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.listener = nil
	s.mu.Unlock()

	s.sub.Unsubscribe()
}

// Wait blocks until every accepted payload has produced its outcome.
func (s *Session) Wait() {
	s.inflight.Wait()
}
