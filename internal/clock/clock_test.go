package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/QRHunt_Go/internal/clock"
)

func TestSimulated(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := clock.NewSimulated(start)

	assert.Equal(t, start, c.Now())

	c.Advance(1500 * time.Millisecond)
	assert.Equal(t, start.Add(1500*time.Millisecond), c.Now())
	assert.Equal(t, 1500*time.Millisecond, c.Since(start))

	c.Set(start)
	assert.Zero(t, c.Since(start))
}

func TestReal(t *testing.T) {
	var c clock.Clock = clock.NewReal()
	before := time.Now()
	assert.False(t, c.Now().Before(before))
	assert.GreaterOrEqual(t, c.Since(before), time.Duration(0))
}
