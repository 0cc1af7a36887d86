// Package member serves the directory of other players and their badge counts.
package member

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/osse101/QRHunt_Go/internal/clock"
	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/event"
	"github.com/osse101/QRHunt_Go/internal/logger"
	"github.com/osse101/QRHunt_Go/internal/repository"
)

// Service defines member directory operations
type Service interface {
	// ListMembers returns every member except the caller, most badges first.
	ListMembers(ctx context.Context, caller domain.Identity) ([]domain.Member, error)
	// Invalidate drops every cached view.
	Invalidate()
}

type service struct {
	store repository.Profile
	clock clock.Clock
	cache *expirable.LRU[string, []domain.Member]
	group singleflight.Group
}

// NewService creates a directory service caching up to size caller views for ttl.
func NewService(store repository.Profile, clk clock.Clock, size int, ttl time.Duration) Service {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if clk == nil {
		clk = clock.NewReal()
	}
	return &service{
		store: store,
		clock: clk,
		cache: expirable.NewLRU[string, []domain.Member](size, nil, ttl),
	}
}

func (s *service) ListMembers(ctx context.Context, caller domain.Identity) ([]domain.Member, error) {
	log := logger.FromContext(ctx)

	if !caller.Valid(s.clock.Now()) {
		return nil, domain.ErrUnauthorized
	}

	if cached, ok := s.cache.Get(caller.UserID); ok {
		log.Debug(LogMsgCacheHit, "user_id", caller.UserID)
		return cached, nil
	}

	// Concurrent misses share one store query.
	v, err, _ := s.group.Do(directoryKey, func() (interface{}, error) {
		return s.store.ListMembers(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListMembersFmt, err)
	}

	all := v.([]domain.Member)
	others := make([]domain.Member, 0, len(all))
	for _, m := range all {
		if m.UserID != caller.UserID {
			others = append(others, m)
		}
	}

	s.cache.Add(caller.UserID, others)
	log.Debug(LogMsgDirectoryLoaded, "user_id", caller.UserID, "count", len(others))
	return others, nil
}

func (s *service) Invalidate() {
	s.cache.Purge()
	s.group.Forget(directoryKey)
	logger.Debug(LogMsgCacheInvalidated)
}

// Register invalidates the cache whenever a badge is added or a member joins.
func Register(bus event.Bus, svc Service) {
	bus.Subscribe(event.RedemptionCompleted, func(ctx context.Context, evt event.Event) error {
		p, err := event.DecodePayload[domain.RedemptionCompletedPayload](evt.Payload)
		if err != nil {
			return err
		}
		if p.Kind == domain.OutcomeAdded {
			svc.Invalidate()
		}
		return nil
	})
	bus.Subscribe(event.ProfileCreated, func(context.Context, event.Event) error {
		svc.Invalidate()
		return nil
	})
}
