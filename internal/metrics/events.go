package metrics

import (
	"context"

	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/event"
	"github.com/osse101/QRHunt_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{
		event.RedemptionCompleted,
		event.ProfileCreated,
		event.ScanDropped,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.RedemptionCompleted:
		p, err := event.DecodePayload[domain.RedemptionCompletedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		reason := string(p.Reason)
		if reason == "" {
			reason = ReasonNone
		}
		RedemptionsTotal.WithLabelValues(string(p.Kind), reason).Inc()
		RedemptionDuration.WithLabelValues(string(p.Kind)).Observe(float64(p.DurationMs) / 1000)
		if p.Kind == domain.OutcomeAdded {
			ItemsRedeemed.WithLabelValues(p.ItemID).Inc()
		}

	case event.ScanDropped:
		p, err := event.DecodePayload[domain.ScanDroppedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		ScansDropped.WithLabelValues(p.Reason).Inc()

	case event.ProfileCreated:
		ProfilesCreated.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
