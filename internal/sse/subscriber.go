package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers handlers for the events streamed to clients
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.RedemptionCompleted, s.handleRedemption)
	s.bus.Subscribe(event.ProfileCreated, s.handleProfileCreated)

	slog.Info(LogMsgSubscriberReady, "types", []string{
		string(event.RedemptionCompleted),
		string(event.ProfileCreated),
	})
}

func (s *Subscriber) handleRedemption(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.RedemptionCompletedPayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "type", evt.Type, "error", err)
		return nil
	}
	if p.UserID == "" {
		return nil
	}

	outcome := domain.Outcome{Kind: p.Kind, ItemID: p.ItemID, Reason: p.Reason}
	s.hub.SendTo(p.UserID, EventTypeRedemption, RedemptionPayload{
		Kind:      p.Kind,
		ItemID:    p.ItemID,
		Reason:    p.Reason,
		Retryable: p.Reason.Retryable(),
		Message:   outcome.Message(),
	})

	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeRedemption, "user_id", p.UserID, "kind", p.Kind)
	return nil
}

func (s *Subscriber) handleProfileCreated(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.ProfileCreatedPayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeMemberJoined, MemberJoinedPayload(p))
	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeMemberJoined, "user_id", p.UserID)
	return nil
}
