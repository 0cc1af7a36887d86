package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QRHunt_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event

	bus.Subscribe(RedemptionCompleted, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewRedemptionCompletedEvent("alice", domain.Added("ifc"), 12*time.Millisecond, "req-1")))
	require.NoError(t, bus.Publish(context.Background(), NewProfileCreatedEvent("alice")))

	require.Len(t, got, 1)
	payload, err := DecodePayload[domain.RedemptionCompletedPayload](got[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, domain.RedemptionCompletedPayload{UserID: "alice", Kind: domain.OutcomeAdded, ItemID: "ifc", DurationMs: 12}, payload)
	assert.Equal(t, "req-1", got[0].GetMetadataValue(MetadataKeyRequestID))
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, e Event) error {
		count++
		return nil
	}

	bus.Subscribe(ScanDropped, handler)
	bus.Subscribe(ScanDropped, handler)

	require.NoError(t, bus.Publish(context.Background(), NewScanDroppedEvent("busy")))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishErrorAndPanic(t *testing.T) {
	bus := NewMemoryBus()
	ran := false

	bus.Subscribe(ProfileCreated, func(ctx context.Context, e Event) error {
		return errors.New("handler error")
	})
	bus.Subscribe(ProfileCreated, func(ctx context.Context, e Event) error {
		panic("boom")
	})
	bus.Subscribe(ProfileCreated, func(ctx context.Context, e Event) error {
		ran = true
		return nil
	})

	err := bus.Publish(context.Background(), NewProfileCreatedEvent("alice"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler error")
	assert.Contains(t, err.Error(), "panicked")
	assert.True(t, ran, "later handlers still run")
}

func TestDecodePayload_FromMap(t *testing.T) {
	payload, err := DecodePayload[domain.ScanDroppedPayload](map[string]interface{}{"reason": "debounce"})
	require.NoError(t, err)
	assert.Equal(t, "debounce", payload.Reason)
}

func TestDecodePayload_Pointer(t *testing.T) {
	payload, err := DecodePayload[domain.ProfileCreatedPayload](&domain.ProfileCreatedPayload{UserID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", payload.UserID)
}

func TestDecodePayload_Errors(t *testing.T) {
	_, err := DecodePayload[domain.ScanDroppedPayload](nil)
	assert.ErrorContains(t, err, "domain.ScanDroppedPayload")

	_, err = DecodePayload[domain.ScanDroppedPayload](map[string]interface{}{"reason": 7})
	assert.ErrorContains(t, err, "decode payload")
}

func TestGetMetadataValue_Nil(t *testing.T) {
	assert.Nil(t, NewProfileCreatedEvent("x").GetMetadataValue(MetadataKeyRequestID))
}
