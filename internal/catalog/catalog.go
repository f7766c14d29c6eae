package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/productgen/internal/platform/logger"
)

// Lookup errors.
var (
	// ErrCategoryNotFound is returned when no live category has the given id.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrLookupDisabled is returned by Disabled lookups.
	ErrLookupDisabled = errors.New("category lookup disabled")
)

// CategoryLookup resolves a category id to its name.
type CategoryLookup interface {
	CategoryName(ctx context.Context, id string) (string, error)
}

// Disabled is a CategoryLookup used when no database is configured.
type Disabled struct{}

// CategoryName always fails with ErrLookupDisabled.
func (Disabled) CategoryName(context.Context, string) (string, error) {
	return "", ErrLookupDisabled
}

// ResolveName returns the category name for id, or "" when id is blank or
// the lookup fails. Failures are logged as warnings; generation proceeds
// without the category constraint.
func ResolveName(ctx context.Context, lookup CategoryLookup, id string, fallback *slog.Logger) string {
	id = strings.TrimSpace(id)
	if id == "" || lookup == nil {
		return ""
	}

	name, err := lookup.CategoryName(ctx, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, fallback).WarnContext(ctx,
			"category lookup failed, continuing without category",
			"category_id", id,
			"error", err)
		return ""
	}
	return name
}
