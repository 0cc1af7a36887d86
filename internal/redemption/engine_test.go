package redemption

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QRHunt_Go/internal/catalog"
	"github.com/osse101/QRHunt_Go/internal/database/memory"
	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/event"
	"github.com/osse101/QRHunt_Go/mocks"
)

var alice = domain.Identity{UserID: "alice", Email: "alice@example.com"}

func testCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.FromMap(map[string]string{"ifc.jpeg": "ifc", "bnb.jpeg": "bnb"})
	require.NoError(t, err)
	return cat
}

func TestDecide_UnknownCodeNeverTouchesStore(t *testing.T) {
	store := mocks.NewMockCollection(t)
	engine := NewEngine(testCatalog(t), store)

	for _, payload := range []string{"bogus", "", "IFC.JPEG", "ifc.jpeg "} {
		out := engine.Decide(context.Background(), alice, payload)
		assert.Equal(t, domain.InvalidCode(payload), out)
	}

	store.AssertNotCalled(t, "AppendIfAbsent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecide_MapsStoreResult(t *testing.T) {
	tests := []struct {
		name       string
		added      bool
		err        error
		wantKind   domain.OutcomeKind
		wantReason domain.FailureReason
	}{
		{"added", true, nil, domain.OutcomeAdded, domain.ReasonNone},
		{"already owned", false, nil, domain.OutcomeAlreadyOwned, domain.ReasonNone},
		{"unavailable", false, fmt.Errorf("%w: connection refused", domain.ErrUnavailable), domain.OutcomeFailure, domain.ReasonUnavailable},
		{"unauthorized", false, domain.ErrUnauthorized, domain.OutcomeFailure, domain.ReasonUnauthorized},
		{"store timeout", false, fmt.Errorf("%w: slow", domain.ErrTimeout), domain.OutcomeFailure, domain.ReasonTimeout},
		{"bare deadline", false, context.DeadlineExceeded, domain.OutcomeFailure, domain.ReasonTimeout},
		{"unexpected", false, errors.New("disk on fire"), domain.OutcomeFailure, domain.ReasonInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockCollection(t)
			store.On("AppendIfAbsent", mock.Anything, alice, "alice", "ifc").Return(tt.added, tt.err).Once()

			out := NewEngine(testCatalog(t), store).Decide(context.Background(), alice, "ifc.jpeg")

			assert.Equal(t, tt.wantKind, out.Kind)
			assert.Equal(t, tt.wantReason, out.Reason)
			if tt.err == nil {
				assert.Equal(t, "ifc", out.ItemID)
			} else {
				assert.ErrorIs(t, out.Err, tt.err)
			}
		})
	}
}

func TestDecide_RecoversStorePanic(t *testing.T) {
	store := mocks.NewMockCollection(t)
	store.On("AppendIfAbsent", mock.Anything, alice, "alice", "ifc").
		Panic("boom").Once()

	out := NewEngine(testCatalog(t), store).Decide(context.Background(), alice, "ifc.jpeg")

	assert.Equal(t, domain.OutcomeFailure, out.Kind)
	assert.Equal(t, domain.ReasonInternal, out.Reason)
	assert.ErrorIs(t, out.Err, ErrStorePanic)
	assert.Contains(t, out.Err.Error(), "boom")
}

func TestDecide_DetachedFromCallerCancellation(t *testing.T) {
	store := mocks.NewMockCollection(t)
	live := mock.MatchedBy(func(ctx context.Context) bool {
		_, hasDeadline := ctx.Deadline()
		return ctx.Err() == nil && hasDeadline
	})
	store.On("AppendIfAbsent", live, alice, "alice", "ifc").Return(true, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := NewEngine(testCatalog(t), store).Decide(ctx, alice, "ifc.jpeg")
	assert.Equal(t, domain.Added("ifc"), out)
}

func TestDecide_TimesOutWhenStoreHangs(t *testing.T) {
	release := make(chan time.Time)
	store := mocks.NewMockCollection(t)
	store.On("AppendIfAbsent", mock.Anything, alice, "alice", "ifc").
		WaitUntil(release).
		Return(true, nil).Once()
	t.Cleanup(func() { close(release) })

	start := time.Now()
	out := NewEngine(testCatalog(t), store, WithTimeout(20*time.Millisecond)).
		Decide(context.Background(), alice, "ifc.jpeg")

	assert.Equal(t, domain.OutcomeFailure, out.Kind)
	assert.Equal(t, domain.ReasonTimeout, out.Reason)
	assert.True(t, out.Reason.Retryable())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestDecide_PublishesOutcome(t *testing.T) {
	bus := event.NewMemoryBus()
	var got []domain.RedemptionCompletedPayload
	bus.Subscribe(event.RedemptionCompleted, func(_ context.Context, evt event.Event) error {
		p, err := event.DecodePayload[domain.RedemptionCompletedPayload](evt.Payload)
		require.NoError(t, err)
		got = append(got, p)
		return nil
	})

	engine := NewEngine(testCatalog(t), memory.NewStore(), WithBus(bus))
	engine.Decide(context.Background(), alice, "ifc.jpeg")
	engine.Decide(context.Background(), alice, "nope")

	require.Len(t, got, 2)
	assert.Equal(t, domain.OutcomeAdded, got[0].Kind)
	assert.Equal(t, "ifc", got[0].ItemID)
	assert.Equal(t, "alice", got[0].UserID)
	assert.Equal(t, domain.OutcomeInvalidCode, got[1].Kind)
}

func TestDecide_PublishErrorDoesNotChangeOutcome(t *testing.T) {
	bus := event.NewMemoryBus()
	bus.Subscribe(event.RedemptionCompleted, func(context.Context, event.Event) error {
		return errors.New("subscriber down")
	})

	out := NewEngine(testCatalog(t), memory.NewStore(), WithBus(bus)).
		Decide(context.Background(), alice, "ifc.jpeg")
	assert.Equal(t, domain.Added("ifc"), out)
}

// The worked example: one catalog entry, one user, three scans.
func TestDecide_WorkedExample(t *testing.T) {
	cat, err := catalog.FromMap(map[string]string{"ifc.jpeg": "ifc"})
	require.NoError(t, err)
	store := memory.NewStore()
	engine := NewEngine(cat, store)
	ctx := context.Background()

	assert.Equal(t, domain.Added("ifc"), engine.Decide(ctx, alice, "ifc.jpeg"))
	assert.Equal(t, domain.AlreadyOwned("ifc"), engine.Decide(ctx, alice, "ifc.jpeg"))
	assert.Equal(t, domain.InvalidCode("bogus"), engine.Decide(ctx, alice, "bogus"))

	items, err := store.Read(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"ifc"}, items.Slice())
}

func TestDecide_ConcurrentSameItemAddsOnce(t *testing.T) {
	store := memory.NewStore()
	engine := NewEngine(testCatalog(t), store)

	const devices = 32
	var added, owned atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < devices; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch engine.Decide(context.Background(), alice, "ifc.jpeg").Kind {
			case domain.OutcomeAdded:
				added.Add(1)
			case domain.OutcomeAlreadyOwned:
				owned.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), added.Load())
	assert.Equal(t, int32(devices-1), owned.Load())

	items, err := store.Read(context.Background(), alice, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, items.Len())
}

// flakyStore fails the first append with ErrUnavailable before delegating.
type flakyStore struct {
	*memory.Store
	failed atomic.Bool
}

func (f *flakyStore) AppendIfAbsent(ctx context.Context, caller domain.Identity, userID, itemID string) (bool, error) {
	if f.failed.CompareAndSwap(false, true) {
		return false, fmt.Errorf("%w: connection reset", domain.ErrUnavailable)
	}
	return f.Store.AppendIfAbsent(ctx, caller, userID, itemID)
}

func TestDecide_RetryAfterUnavailableConverges(t *testing.T) {
	store := &flakyStore{Store: memory.NewStore()}
	engine := NewEngine(testCatalog(t), store)
	ctx := context.Background()

	first := engine.Decide(ctx, alice, "ifc.jpeg")
	require.Equal(t, domain.ReasonUnavailable, first.Reason)
	assert.True(t, first.Reason.Retryable())

	assert.Equal(t, domain.Added("ifc"), engine.Decide(ctx, alice, "ifc.jpeg"))

	items, err := store.Read(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"ifc"}, items.Slice())
}

func BenchmarkDecide(b *testing.B) {
	cat := testCatalog(b)
	b.Run("invalid_code", func(b *testing.B) {
		engine := NewEngine(cat, memory.NewStore())
		ctx := context.Background()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			engine.Decide(ctx, alice, "bogus")
		}
	})
	b.Run("already_owned", func(b *testing.B) {
		engine := NewEngine(cat, memory.NewStore())
		ctx := context.Background()
		engine.Decide(ctx, alice, "ifc.jpeg")
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			engine.Decide(ctx, alice, "ifc.jpeg")
		}
	})
}
