// Package leaktest detects goroutines left running by a test.
package leaktest

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
	"time"
)

const (
	settleTimeout = time.Second
	pollInterval  = 10 * time.Millisecond
)

// Snapshot is the set of goroutines alive when it was taken
type Snapshot struct {
	t      testing.TB
	before map[string]bool
}

// Take records the goroutines currently running
func Take(t testing.TB) *Snapshot {
	t.Helper()
	return &Snapshot{t: t, before: goroutineIDs(stacks())}
}

// Verify fails the test when goroutines started after Take are still alive
// once the settle timeout has passed. Up to tolerance survivors are allowed,
// for pools that keep a background worker alive.
func (s *Snapshot) Verify(tolerance int) {
	s.t.Helper()

	var leaked []string
	deadline := time.Now().Add(settleTimeout)
	for {
		leaked = s.leaked()
		if len(leaked) <= tolerance || time.Now().After(deadline) {
			break
		}
		time.Sleep(pollInterval)
	}

	if len(leaked) > tolerance {
		s.t.Errorf("%d goroutine(s) leaked (tolerance %d):\n\n%s",
			len(leaked), tolerance, strings.Join(leaked, "\n\n"))
	}
}

func (s *Snapshot) leaked() []string {
	var out []string
	for _, g := range stacks() {
		id := goroutineID(g)
		if s.before[id] {
			continue
		}
		out = append(out, g)
	}
	return out
}

// Check runs fn and verifies it left no goroutines behind
func Check(t *testing.T, fn func()) {
	t.Helper()
	snap := Take(t)
	fn()
	snap.Verify(0)
}

func stacks() []string {
	buf := make([]byte, 1<<16)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, 2*len(buf))
	}
	return strings.Split(string(bytes.TrimSpace(buf)), "\n\n")
}

// goroutineID extracts "goroutine 42" from a stack header
func goroutineID(stack string) string {
	header, _, _ := strings.Cut(stack, " [")
	return header
}

func goroutineIDs(all []string) map[string]bool {
	ids := make(map[string]bool, len(all))
	for _, g := range all {
		ids[goroutineID(g)] = true
	}
	return ids
}
