package catalog

// Schema registered with the validator for catalog files
const (
	SchemaName = "catalog.schema.json"
)

// Error messages
const (
	ErrMsgReadCatalogFailed  = "failed to read catalog file %s: %w"
	ErrMsgParseCatalogFailed = "failed to parse catalog file %s: %w"
	ErrMsgSchemaFailed       = "schema validation failed for %s: %w"
	ErrFmtEmptyScanCode      = "%w: entry %d has empty scan_code"
	ErrFmtEmptyItemID        = "%w: entry %q has empty item_id"
	ErrFmtDuplicateScanCode  = "%w: %q"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Catalog loaded"
)
