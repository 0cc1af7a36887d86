package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/logger"
	"github.com/osse101/QRHunt_Go/internal/validation"
)

//go:embed catalog.schema.json
var schema []byte

// File is the on-disk catalog format
type File struct {
	Version     string                `json:"version"`
	Description string                `json:"description"`
	Entries     []domain.CatalogEntry `json:"entries"`
}

// Loader reads catalog files and validates them against the embedded schema
type Loader struct {
	validator validation.SchemaValidator
}

// NewLoader creates a Loader with the catalog schema registered
func NewLoader() (*Loader, error) {
	v := validation.NewSchemaValidator()
	if err := v.AddSchema(SchemaName, schema); err != nil {
		return nil, err
	}
	return &Loader{validator: v}, nil
}

// Load reads path and builds a catalog. Any invalid entry rejects the whole file.
func (l *Loader) Load(ctx context.Context, path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFailed, path, err)
	}

	c, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalogFailed, path, err)
	}

	logger.FromContext(ctx).Info(LogMsgCatalogLoaded, "path", path, "entries", c.Len())
	return c, nil
}

// Parse validates data against the schema and builds a catalog
func (l *Loader) Parse(data []byte) (*Catalog, error) {
	if err := l.validator.ValidateBytes(data, SchemaName); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	return New(f.Entries)
}

// LoadOrDefault loads path when set and falls back to the built-in catalog otherwise
func LoadOrDefault(ctx context.Context, path string) (*Catalog, error) {
	if path == "" {
		c := Default()
		logger.FromContext(ctx).Info(LogMsgCatalogLoaded, "path", "(built-in)", "entries", c.Len())
		return c, nil
	}
	l, err := NewLoader()
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, path)
}
