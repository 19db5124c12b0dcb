package store

import (
	"context"
	"fmt"

	"github.com/apper-canvas/stylehub-port-matrix/pkg/config"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/logger"
)

// Collection names used by the storefront.
const (
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionCart       = "cart"
	CollectionWishlist   = "wishlist"
)

// Store persists whole collections as single serialized units. Load on an
// absent collection yields an empty sequence; Save replaces the collection in
// one write. Identity allocation is owned by the store: NextID hands out a
// monotonic per-collection counter that is persisted alongside the records,
// so ids are never reused after the highest record is deleted.
type Store interface {
	Load(ctx context.Context, collection string, out any) error
	Save(ctx context.Context, collection string, records any) error
	NextID(ctx context.Context, collection string) (int64, error)
	AdvanceCounter(ctx context.Context, collection string, to int64) error
	Ping(ctx context.Context) error
	Close() error
}

// New builds the store backend selected by configuration.
func New(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return NewMemory(), nil
	case config.StoreBackendFile:
		return NewFile(cfg.Store.DataDir)
	case config.StoreBackendDB:
		return NewGorm(ctx, cfg.DB, logg)
	case config.StoreBackendRedis:
		return NewRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}
