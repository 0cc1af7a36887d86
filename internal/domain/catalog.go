package domain

// CatalogEntry maps the raw payload of a QR code to the collectible it unlocks.
type CatalogEntry struct {
	ScanCode    string `json:"scan_code"`
	ItemID      string `json:"item_id"`
	DisplayName string `json:"display_name"`
	Image       string `json:"image,omitempty"`
}
