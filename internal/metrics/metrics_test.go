package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/event"
)

func TestEventMetricsCollector_Redemptions(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	added := RedemptionsTotal.WithLabelValues(string(domain.OutcomeAdded), ReasonNone)
	unavailable := RedemptionsTotal.WithLabelValues(string(domain.OutcomeFailure), string(domain.ReasonUnavailable))
	items := ItemsRedeemed.WithLabelValues("metrics-test-item")
	beforeAdded, beforeUnavailable, beforeItems := testutil.ToFloat64(added), testutil.ToFloat64(unavailable), testutil.ToFloat64(items)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewRedemptionCompletedEvent("u", domain.Added("metrics-test-item"), time.Millisecond, "")))
	require.NoError(t, bus.Publish(ctx, event.NewRedemptionCompletedEvent("u", domain.AlreadyOwned("metrics-test-item"), time.Millisecond, "")))
	require.NoError(t, bus.Publish(ctx, event.NewRedemptionCompletedEvent("u", domain.Failure(domain.ErrUnavailable), time.Millisecond, "")))

	assert.Equal(t, beforeAdded+1, testutil.ToFloat64(added))
	assert.Equal(t, beforeUnavailable+1, testutil.ToFloat64(unavailable))
	assert.Equal(t, beforeItems+1, testutil.ToFloat64(items), "only Added counts as a redeemed item")
}

func TestEventMetricsCollector_ScanDropped(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	c := ScansDropped.WithLabelValues("busy")
	before := testutil.ToFloat64(c)

	require.NoError(t, bus.Publish(context.Background(), event.NewScanDroppedEvent("busy")))
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	c := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/things/{id}", "418")
	before := testutil.ToFloat64(c)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/things/42", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
