// Package catalog maps raw QR payloads to the collectible items they unlock.
package catalog

import (
	"errors"
	"fmt"

	"github.com/osse101/QRHunt_Go/internal/domain"
)

// Sentinel errors for catalog construction
var (
	ErrInvalidCatalog    = errors.New("invalid catalog")
	ErrDuplicateScanCode = errors.New("duplicate scan code")
)

// Catalog is an immutable scanCode -> itemID mapping. Safe for concurrent use.
type Catalog struct {
	entries []domain.CatalogEntry
	byCode  map[string]int
	byItem  map[string]int
}

// New builds a catalog from entries. Scan codes must be unique and every
// entry needs a scan code and an item ID. DisplayName defaults to the item ID.
func New(entries []domain.CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]domain.CatalogEntry, 0, len(entries)),
		byCode:  make(map[string]int, len(entries)),
		byItem:  make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		if e.ScanCode == "" {
			return nil, fmt.Errorf(ErrFmtEmptyScanCode, ErrInvalidCatalog, i)
		}
		if e.ItemID == "" {
			return nil, fmt.Errorf(ErrFmtEmptyItemID, ErrInvalidCatalog, e.ScanCode)
		}
		if _, dup := c.byCode[e.ScanCode]; dup {
			return nil, fmt.Errorf(ErrFmtDuplicateScanCode, ErrDuplicateScanCode, e.ScanCode)
		}
		if e.DisplayName == "" {
			e.DisplayName = e.ItemID
		}

		c.byCode[e.ScanCode] = len(c.entries)
		if _, seen := c.byItem[e.ItemID]; !seen {
			c.byItem[e.ItemID] = len(c.entries)
		}
		c.entries = append(c.entries, e)
	}

	return c, nil
}

// FromMap builds a catalog from a bare scanCode -> itemID mapping.
func FromMap(codes map[string]string) (*Catalog, error) {
	entries := make([]domain.CatalogEntry, 0, len(codes))
	for code, itemID := range codes {
		entries = append(entries, domain.CatalogEntry{ScanCode: code, ItemID: itemID})
	}
	return New(entries)
}

// Lookup returns the item unlocked by scanCode. Any string is accepted;
// unknown codes report ok=false.
func (c *Catalog) Lookup(scanCode string) (itemID string, ok bool) {
	i, ok := c.byCode[scanCode]
	if !ok {
		return "", false
	}
	return c.entries[i].ItemID, true
}

// Entry returns the metadata of the first entry that unlocks itemID.
func (c *Catalog) Entry(itemID string) (domain.CatalogEntry, bool) {
	i, ok := c.byItem[itemID]
	if !ok {
		return domain.CatalogEntry{}, false
	}
	return c.entries[i], true
}

// Entries returns a copy of all entries in declaration order.
func (c *Catalog) Entries() []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of scan codes.
func (c *Catalog) Len() int {
	return len(c.entries)
}
