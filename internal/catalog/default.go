package catalog

import "github.com/osse101/QRHunt_Go/internal/domain"

var defaultEntries = []domain.CatalogEntry{
	{ScanCode: "eca!.jpeg", ItemID: "eca!", DisplayName: "ECA!", Image: "eca!.png"},
	{ScanCode: "bnb.jpeg", ItemID: "bnb", DisplayName: "BNB", Image: "bnb.png"},
	{ScanCode: "cafofo.jpeg", ItemID: "cafofo", DisplayName: "Cafofo", Image: "cafofo.png"},
	{ScanCode: "edm.jpeg", ItemID: "edm", DisplayName: "EDM", Image: "edm.png"},
	{ScanCode: "ifc.jpeg", ItemID: "ifc", DisplayName: "IFC", Image: "ifc.png"},
	{ScanCode: "rdb.jpeg", ItemID: "rdb", DisplayName: "RDB", Image: "rdb.png"},
	{ScanCode: "virgula.jpeg", ItemID: "virgula", DisplayName: "Vírgula", Image: "virgula.png"},
}

// Default returns the built-in catalog of the seven campus badges.
func Default() *Catalog {
	c, err := New(defaultEntries)
	if err != nil {
		panic(err)
	}
	return c
}
