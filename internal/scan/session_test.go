package scan

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QRHunt_Go/internal/catalog"
	"github.com/osse101/QRHunt_Go/internal/clock"
	"github.com/osse101/QRHunt_Go/internal/database/memory"
	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/event"
	"github.com/osse101/QRHunt_Go/internal/redemption"
	"github.com/osse101/QRHunt_Go/internal/session"
	"github.com/osse101/QRHunt_Go/internal/testing/leaktest"
)

var bob = domain.Identity{UserID: "bob"}

// fakeEngine records calls and optionally blocks until gate is closed.
type fakeEngine struct {
	mu    sync.Mutex
	calls []string
	users []string
	gate  chan struct{}
}

func (f *fakeEngine) Decide(_ context.Context, caller domain.Identity, raw string) domain.Outcome {
	f.mu.Lock()
	f.calls = append(f.calls, raw)
	f.users = append(f.users, caller.UserID)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return domain.Added(raw)
}

func (f *fakeEngine) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type harness struct {
	engine   *fakeEngine
	auth     *session.Context
	clock    *clock.Simulated
	outcomes chan domain.Outcome
	session  *Session
}

func newHarness(t *testing.T, gated bool, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		engine:   &fakeEngine{},
		auth:     session.NewSignedIn(bob),
		clock:    clock.NewSimulated(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)),
		outcomes: make(chan domain.Outcome, 16),
	}
	if gated {
		h.engine.gate = make(chan struct{})
	}
	opts = append([]Option{
		WithClock(h.clock),
		WithDebounce(time.Second),
		WithListener(func(o domain.Outcome) { h.outcomes <- o }),
	}, opts...)
	h.session = New(h.engine, h.auth, opts...)
	t.Cleanup(func() {
		h.session.Close()
		if h.engine.gate != nil {
			select {
			case <-h.engine.gate:
			default:
				close(h.engine.gate)
			}
		}
		h.session.Wait()
	})
	return h
}

func (h *harness) next(t *testing.T) domain.Outcome {
	t.Helper()
	select {
	case o := <-h.outcomes:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return domain.Outcome{}
	}
}

func (h *harness) waitIdle(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool { return !h.session.Busy() }, time.Second, time.Millisecond)
}

func TestSession_DropsWhileBusy(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()

	require.True(t, h.session.Offer(ctx, "a.jpeg"))
	assert.True(t, h.session.Busy())
	assert.False(t, h.session.Offer(ctx, "b.jpeg"))
	assert.False(t, h.session.Offer(ctx, "a.jpeg"))

	close(h.engine.gate)
	assert.Equal(t, domain.Added("a.jpeg"), h.next(t))
	assert.Equal(t, []string{"a.jpeg"}, h.engine.Calls())
}

func TestSession_DebounceWindow(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	require.True(t, h.session.Offer(ctx, "a.jpeg"))
	h.next(t)
	h.waitIdle(t)

	assert.False(t, h.session.Offer(ctx, "a.jpeg"), "inside debounce window")
	h.clock.Advance(999 * time.Millisecond)
	assert.False(t, h.session.Offer(ctx, "a.jpeg"), "one millisecond short")
	h.clock.Advance(time.Millisecond)
	assert.True(t, h.session.Offer(ctx, "a.jpeg"))
	h.next(t)

	assert.Equal(t, []string{"a.jpeg", "a.jpeg"}, h.engine.Calls())
}

func TestSession_ZeroDebounceAcceptsAfterOutcome(t *testing.T) {
	h := newHarness(t, false, WithDebounce(0))
	ctx := context.Background()

	require.True(t, h.session.Offer(ctx, "a.jpeg"))
	h.next(t)
	h.waitIdle(t)
	assert.True(t, h.session.Offer(ctx, "b.jpeg"))
	h.next(t)
}

func TestSession_EmptyPayloadDropped(t *testing.T) {
	bus := event.NewMemoryBus()
	var reasons []string
	bus.Subscribe(event.ScanDropped, func(_ context.Context, evt event.Event) error {
		p, err := event.DecodePayload[domain.ScanDroppedPayload](evt.Payload)
		require.NoError(t, err)
		reasons = append(reasons, p.Reason)
		return nil
	})

	h := newHarness(t, false, WithBus(bus))
	assert.False(t, h.session.Offer(context.Background(), ""))
	assert.Empty(t, h.engine.Calls())
	assert.False(t, h.session.Busy())
	assert.Equal(t, []string{DropReasonEmpty}, reasons)
}

func TestSession_SignedOutYieldsUnauthorized(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	h.auth.SignOut()

	require.True(t, h.session.Offer(ctx, "a.jpeg"))
	out := h.next(t)
	assert.Equal(t, domain.OutcomeFailure, out.Kind)
	assert.Equal(t, domain.ReasonUnauthorized, out.Reason)
	assert.Empty(t, h.engine.Calls())

	h.auth.SignIn(domain.Identity{UserID: "carol"})
	h.clock.Advance(time.Second)
	require.True(t, h.session.Offer(ctx, "a.jpeg"))
	h.next(t)

	h.engine.mu.Lock()
	defer h.engine.mu.Unlock()
	assert.Equal(t, []string{"carol"}, h.engine.users)
}

func TestSession_CloseDiscardsInFlightOutcome(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()

	require.True(t, h.session.Offer(ctx, "a.jpeg"))
	h.session.Close()
	assert.Equal(t, 0, h.auth.Listeners())

	close(h.engine.gate)
	h.session.Wait()

	assert.Equal(t, []string{"a.jpeg"}, h.engine.Calls(), "in-flight redemption still ran")
	select {
	case o := <-h.outcomes:
		t.Fatalf("unexpected outcome after close: %v", o)
	default:
	}

	h.clock.Advance(time.Hour)
	assert.False(t, h.session.Offer(ctx, "b.jpeg"))
	h.session.Close()
}

func TestSession_RunStopsWhenFramesClose(t *testing.T) {
	leaktest.Check(t, func() {
		h := newHarness(t, false, WithDebounce(0))
		frames := make(chan string, 3)
		frames <- "a.jpeg"
		frames <- ""
		close(frames)

		require.NoError(t, h.session.Run(context.Background(), frames))
		h.next(t)
		h.session.Wait()
	})
}

func TestSession_RunStopsOnContextCancel(t *testing.T) {
	h := newHarness(t, false)
	frames := make(chan string)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.session.Run(ctx, frames) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSession_RunAfterCloseReturnsErrClosed(t *testing.T) {
	h := newHarness(t, false)
	h.session.Close()

	frames := make(chan string, 1)
	frames <- "a.jpeg"
	assert.ErrorIs(t, h.session.Run(context.Background(), frames), ErrClosed)
}

func TestSession_WithRealEngine(t *testing.T) {
	cat, err := catalog.FromMap(map[string]string{"ifc.jpeg": "ifc"})
	require.NoError(t, err)
	store := memory.NewStore()
	engine := redemption.NewEngine(cat, store)

	clk := clock.NewSimulated(time.Unix(0, 0))
	outcomes := make(chan domain.Outcome, 4)
	s := New(engine, session.NewSignedIn(bob),
		WithClock(clk),
		WithListener(func(o domain.Outcome) { outcomes <- o }))
	defer s.Close()
	ctx := context.Background()

	require.True(t, s.Offer(ctx, "ifc.jpeg"))
	assert.Equal(t, domain.Added("ifc"), <-outcomes)
	s.Wait()

	clk.Advance(DefaultDebounce)
	require.True(t, s.Offer(ctx, "ifc.jpeg"))
	assert.Equal(t, domain.AlreadyOwned("ifc"), <-outcomes)
	s.Wait()

	clk.Advance(DefaultDebounce)
	require.True(t, s.Offer(ctx, "garbage"))
	assert.Equal(t, domain.InvalidCode("garbage"), <-outcomes)
}
