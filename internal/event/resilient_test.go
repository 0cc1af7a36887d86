package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failingHandler(failures int32, calls *atomic.Int32) Handler {
	return func(context.Context, Event) error {
		if calls.Add(1) <= failures {
			return errors.New("handler down")
		}
		return nil
	}
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []DeadLetterEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e DeadLetterEntry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		out = append(out, e)
	}
	return out
}

func TestResilientPublisher_PassThrough(t *testing.T) {
	bus := NewMemoryBus()
	var calls atomic.Int32
	p := NewResilientPublisher(bus, ResilientConfig{})
	p.Subscribe(ProfileCreated, failingHandler(0, &calls))

	require.NoError(t, p.Publish(context.Background(), NewProfileCreatedEvent("alice")))
	assert.Equal(t, int32(1), calls.Load())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestResilientPublisher_RetriesUntilDelivered(t *testing.T) {
	var calls atomic.Int32
	p := NewResilientPublisher(NewMemoryBus(), ResilientConfig{MaxRetries: 5, RetryDelay: time.Millisecond})
	p.Subscribe(ProfileCreated, failingHandler(2, &calls))

	require.NoError(t, p.Publish(context.Background(), NewProfileCreatedEvent("alice")), "caller never sees handler errors")
	require.Eventually(t, func() bool { return calls.Load() == 3 }, time.Second, time.Millisecond)
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestResilientPublisher_DeadLettersAfterRetries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dl", "events.jsonl")
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	defer dl.Close()

	var calls atomic.Int32
	p := NewResilientPublisher(NewMemoryBus(), ResilientConfig{MaxRetries: 2, RetryDelay: time.Millisecond, DeadLetter: dl})
	p.Subscribe(ScanDropped, failingHandler(100, &calls))

	require.NoError(t, p.Publish(context.Background(), NewScanDroppedEvent("busy")))
	require.NoError(t, p.Shutdown(context.Background()))

	// Shutdown may have interrupted the backoff; either way the event lands in the file once.
	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, ScanDropped, entries[0].Event.Type)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
	assert.Contains(t, entries[0].LastError, "handler down")
}

func TestResilientPublisher_ShutdownInterruptsBackoff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	defer dl.Close()

	var calls atomic.Int32
	p := NewResilientPublisher(NewMemoryBus(), ResilientConfig{MaxRetries: 3, RetryDelay: time.Hour, DeadLetter: dl})
	p.Subscribe(ProfileCreated, failingHandler(100, &calls))
	require.NoError(t, p.Publish(context.Background(), NewProfileCreatedEvent("alice")))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))

	assert.Equal(t, int32(1), calls.Load())
	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Attempts)

	require.NoError(t, p.Publish(context.Background(), NewProfileCreatedEvent("bob")))
	assert.Len(t, readDeadLetters(t, path), 2, "publish after shutdown dead-letters immediately")
}
