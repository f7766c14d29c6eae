package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phrazzld/productgen/internal/platform/logger"
)

const categoryNameQuery = `
	SELECT name
	FROM product_category
	WHERE id = $1 AND deleted_at IS NULL
`

// rowQuerier is implemented by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresCategoryStore implements CategoryLookup against the
// product_category table.
type PostgresCategoryStore struct {
	db     rowQuerier
	logger *slog.Logger
}

var _ CategoryLookup = (*PostgresCategoryStore)(nil)

// NewPostgresCategoryStore creates a store over db. If logger is nil, the
// default logger is used.
func NewPostgresCategoryStore(db rowQuerier, log *slog.Logger) (*PostgresCategoryStore, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresCategoryStore{
		db:     db,
		logger: log.With(slog.String("component", "category_store")),
	}, nil
}

// CategoryName implements CategoryLookup.
// Returns ErrCategoryNotFound if no live category matches id.
func (s *PostgresCategoryStore) CategoryName(ctx context.Context, id string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.DebugContext(ctx, "looking up category name", slog.String("category_id", id))

	var name string
	if err := s.db.QueryRow(ctx, categoryNameQuery, id).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
		}
		return "", fmt.Errorf("failed to query category %s: %w", id, err)
	}
	return name, nil
}

// OpenPool connects to databaseURL and verifies the connection.
func OpenPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}
