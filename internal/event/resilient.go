package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/QRHunt_Go/internal/logger"
)

// ResilientConfig configures a ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration // attempt n waits n*RetryDelay

	// DeadLetter receives events that exhaust their retries; nil only logs them
	DeadLetter *DeadLetterWriter
}

// ResilientPublisher wraps a Bus so that a failing handler never fails the
// publisher. The first delivery is synchronous; on error the event is
// redelivered in the background and finally dead-lettered.
//
// Redelivery runs every subscriber again, so handlers must tolerate duplicates.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig

	mu       sync.Mutex
	wg       sync.WaitGroup
	stopping chan struct{}
	stopped  bool
}

var _ Bus = (*ResilientPublisher)(nil)

// NewResilientPublisher wraps inner. Non-positive settings take the defaults.
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	return &ResilientPublisher{
		inner:    inner,
		config:   config,
		stopping: make(chan struct{}),
	}
}

// Publish delivers evt and always returns nil once the event is accepted
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	err := p.inner.Publish(ctx, evt)
	if err == nil {
		return nil
	}

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		p.deadLetter(evt, 1, err)
		return nil
	}
	p.wg.Add(1)
	p.mu.Unlock()

	logger.FromContext(ctx).Warn(LogMsgRetryScheduled,
		"event_type", evt.Type,
		"error", err,
		"max_retries", p.config.MaxRetries)

	go p.retry(context.WithoutCancel(ctx), evt, err)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) retry(ctx context.Context, evt Event, lastErr error) {
	defer p.wg.Done()
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= p.config.MaxRetries; attempt++ {
		select {
		case <-time.After(p.config.RetryDelay * time.Duration(attempt)):
		case <-p.stopping:
			log.Warn(LogMsgRetryAbandoned, "event_type", evt.Type, "attempt", attempt)
			p.deadLetter(evt, attempt, lastErr)
			return
		}

		if lastErr = p.inner.Publish(ctx, evt); lastErr == nil {
			log.Info(LogMsgRetrySucceeded, "event_type", evt.Type, "attempt", attempt)
			return
		}
		log.Warn(LogMsgRetryFailed, "event_type", evt.Type, "attempt", attempt, "error", lastErr)
	}

	p.deadLetter(evt, p.config.MaxRetries+1, lastErr)
}

func (p *ResilientPublisher) deadLetter(evt Event, attempts int, lastErr error) {
	logger.Warn(LogMsgDeadLettered, "event_type", evt.Type, "attempts", attempts, "error", lastErr)
	if p.config.DeadLetter == nil {
		return
	}
	if err := p.config.DeadLetter.Write(evt, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterFailed, "event_type", evt.Type, "error", err)
	}
}

// Shutdown stops scheduling retries, dead-letters the pending ones and waits
// for them to finish or ctx to expire.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.stopping)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
