package redemption

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/logger"
	"github.com/osse101/QRHunt_Go/internal/repository"
)

// Service is the redemption surface used by transports.
type Service interface {
	// Redeem decides one scanned payload for the caller. It never errors.
	Redeem(ctx context.Context, caller domain.Identity, rawPayload string) domain.Outcome

	// Inventory returns the caller's collected items joined with catalog metadata,
	// ordered by item ID. A missing collection is an empty inventory.
	Inventory(ctx context.Context, caller domain.Identity) ([]domain.InventoryItem, error)

	// Catalog lists every redeemable entry.
	Catalog() []domain.CatalogEntry
}

type service struct {
	engine *Engine
	store  repository.Collection
}

// NewService creates a redemption service backed by engine and its store.
func NewService(engine *Engine, store repository.Collection) Service {
	return &service{engine: engine, store: store}
}

func (s *service) Redeem(ctx context.Context, caller domain.Identity, rawPayload string) domain.Outcome {
	return s.engine.Decide(ctx, caller, rawPayload)
}

func (s *service) Inventory(ctx context.Context, caller domain.Identity) ([]domain.InventoryItem, error) {
	log := logger.FromContext(ctx)

	items, err := s.store.Read(ctx, caller, caller.UserID)
	if errors.Is(err, domain.ErrCollectionNotFound) {
		items = domain.NewItemSet()
	} else if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCollectionFmt, err)
	}

	cat := s.engine.Catalog()
	out := make([]domain.InventoryItem, 0, items.Len())
	for _, id := range items.Slice() {
		entry, ok := cat.Entry(id)
		if !ok {
			log.Warn(LogMsgUnknownItem, "item_id", id)
			out = append(out, domain.InventoryItem{ItemID: id, DisplayName: id})
			continue
		}
		out = append(out, domain.InventoryItem{
			ItemID:      id,
			DisplayName: entry.DisplayName,
			Image:       entry.Image,
		})
	}

	log.Debug(LogMsgInventoryRead, "user_id", caller.UserID, "count", len(out))
	return out, nil
}

func (s *service) Catalog() []domain.CatalogEntry {
	return s.engine.Catalog().Entries()
}
