package handler

import (
	"net/http"

	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/redemption"
)

// InventoryResponse lists the caller's badges
type InventoryResponse struct {
	Items []domain.InventoryItem `json:"items"`
	Count int                    `json:"count"`
}

// CatalogResponse lists every redeemable badge
type CatalogResponse struct {
	Entries []domain.CatalogEntry `json:"entries"`
}

// HandleGetInventory returns the caller's inventory
// @Summary Get inventory
// @Description Badges collected by the caller, with catalog metadata
// @Tags inventory
// @Produce json
// @Security ApiKeyAuth
// @Param X-User-ID header string true "Authenticated user ID"
// @Success 200 {object} InventoryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/inventory [get]
func HandleGetInventory(svc redemption.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		items, err := svc.Inventory(r.Context(), caller)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetInventoryFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, InventoryResponse{Items: items, Count: len(items)})
	}
}

// HandleGetCatalog returns the catalog
// @Summary Get catalog
// @Description Every badge that can be redeemed
// @Tags inventory
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} CatalogResponse
// @Router /api/v1/catalog [get]
func HandleGetCatalog(svc redemption.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, CatalogResponse{Entries: svc.Catalog()})
	}
}
