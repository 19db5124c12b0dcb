package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/apper-canvas/stylehub-port-matrix/internal/store"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/config"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/logger"
)

// Seeder loads the JSON catalog documents into the persisted store on first
// run. Collections that already hold records are left untouched.
type Seeder struct {
	store store.Store
	logg  *logger.Logger
}

// NewSeeder binds a seeder to the persisted store.
func NewSeeder(st store.Store, logg *logger.Logger) (*Seeder, error) {
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}
	return &Seeder{store: st, logg: logg}, nil
}

// Run seeds products and categories from the configured seed documents.
func (s *Seeder) Run(ctx context.Context, cfg config.SeedConfig) error {
	if err := seedCollection(ctx, s, store.CollectionProducts, cfg.ProductsPath, func(p Product) (int64, error) {
		return p.ID, p.Validate()
	}); err != nil {
		return err
	}
	return seedCollection(ctx, s, store.CollectionCategories, cfg.CategoriesPath, func(c Category) (int64, error) {
		return c.ID, c.Validate()
	})
}

func seedCollection[T any](ctx context.Context, s *Seeder, collection, path string, inspect func(T) (int64, error)) error {
	var existing []T
	if err := s.store.Load(ctx, collection, &existing); err != nil {
		return err
	}
	if len(existing) > 0 {
		s.info(ctx, collection, "seed.skipped")
		return nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.warnMissing(ctx, collection, path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading seed document %s: %w", path, err)
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("decoding seed document %s: %w", path, err)
	}

	var maxID int64
	for _, record := range records {
		id, err := inspect(record)
		if err != nil {
			return fmt.Errorf("seed record in %s: %w", path, err)
		}
		if id <= 0 {
			return fmt.Errorf("seed record in %s: identity must be positive", path)
		}
		if id > maxID {
			maxID = id
		}
	}

	if err := s.store.Save(ctx, collection, records); err != nil {
		return err
	}
	if err := s.store.AdvanceCounter(ctx, collection, maxID); err != nil {
		return err
	}

	if s.logg != nil {
		fields := map[string]any{"collection": collection, "records": len(records)}
		s.logg.Info(s.logg.WithFields(ctx, fields), "seed.loaded")
	}
	return nil
}

func (s *Seeder) info(ctx context.Context, collection, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Info(s.logg.WithCollection(ctx, collection), msg)
}

func (s *Seeder) warnMissing(ctx context.Context, collection, path string) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithFields(ctx, map[string]any{"collection": collection, "path": path})
	s.logg.Warn(ctx, "seed document missing")
}
