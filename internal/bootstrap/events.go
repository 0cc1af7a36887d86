package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/QRHunt_Go/internal/config"
	"github.com/osse101/QRHunt_Go/internal/event"
	"github.com/osse101/QRHunt_Go/internal/member"
	"github.com/osse101/QRHunt_Go/internal/metrics"
)

// EventSystem is the process event bus. Bus is the resilient publisher, so
// services publishing on it never see a handler failure.
type EventSystem struct {
	Bus        event.Bus
	publisher  *event.ResilientPublisher
	deadLetter *event.DeadLetterWriter
}

// InitializeEventSystem wraps an in-memory bus in a resilient publisher and
// attaches the metrics collector. An empty dead-letter path keeps exhausted
// events in the log only.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	var dl *event.DeadLetterWriter
	if cfg.EventDeadLetterPath != "" {
		w, err := event.NewDeadLetterWriter(cfg.EventDeadLetterPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenDeadLetter, err)
		}
		dl = w
	}

	publisher := event.NewResilientPublisher(event.NewMemoryBus(), event.ResilientConfig{
		MaxRetries: cfg.EventMaxRetries,
		RetryDelay: cfg.EventRetryDelay,
		DeadLetter: dl,
	})

	metrics.NewEventMetricsCollector().Register(publisher)
	slog.Info(LogMsgMetricsCollectorRegistered)

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", cfg.EventMaxRetries,
		"retry_delay", cfg.EventRetryDelay,
		"deadletter_path", cfg.EventDeadLetterPath)

	return &EventSystem{Bus: publisher, publisher: publisher, deadLetter: dl}, nil
}

// Shutdown waits for pending redeliveries, then closes the dead-letter file.
func (s *EventSystem) Shutdown(ctx context.Context) error {
	err := s.publisher.Shutdown(ctx)
	if s.deadLetter != nil {
		if cerr := s.deadLetter.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// RegisterEventHandlers subscribes services that react to domain events.
func RegisterEventHandlers(bus event.Bus, members member.Service) {
	member.Register(bus, members)
	slog.Info(LogMsgMemberCacheRegistered)
}
