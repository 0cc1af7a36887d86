package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/QRHunt_Go/internal/catalog"
	"github.com/osse101/QRHunt_Go/internal/config"
	"github.com/osse101/QRHunt_Go/internal/event"
	"github.com/osse101/QRHunt_Go/internal/member"
	"github.com/osse101/QRHunt_Go/internal/profile"
	"github.com/osse101/QRHunt_Go/internal/redemption"
	"github.com/osse101/QRHunt_Go/internal/repository"
	"github.com/osse101/QRHunt_Go/internal/sse"
)

// Services holds the application services built over one store.
type Services struct {
	Engine     *redemption.Engine
	Redemption redemption.Service
	Profiles   profile.Service
	Members    member.Service
}

// InitializeServices loads the catalog and wires the services to store and bus.
func InitializeServices(ctx context.Context, cfg *config.Config, store repository.Store, bus event.Bus) (*Services, error) {
	cat, err := catalog.LoadOrDefault(ctx, cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	engine := redemption.NewEngine(cat, store,
		redemption.WithBus(bus),
		redemption.WithTimeout(cfg.RedemptionTimeout))

	svcs := &Services{
		Engine:     engine,
		Redemption: redemption.NewService(engine, store),
		Profiles:   profile.NewService(store, bus, nil),
		Members:    member.NewService(store, nil, cfg.MemberCacheSize, cfg.MemberCacheTTL),
	}
	RegisterEventHandlers(bus, svcs.Members)
	return svcs, nil
}

// StartEventStream starts the SSE hub and feeds it from bus. Stop the hub on shutdown.
func StartEventStream(bus event.Bus) *sse.Hub {
	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe()
	return hub
}
