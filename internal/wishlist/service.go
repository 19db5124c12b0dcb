package wishlist

import (
	"context"
	"fmt"
	"time"

	"github.com/apper-canvas/stylehub-port-matrix/internal/store"
	pkgerrors "github.com/apper-canvas/stylehub-port-matrix/pkg/errors"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/logger"
)

// Entry marks a product as saved, with the moment it was first added.
type Entry struct {
	ID        int64     `json:"Id"`
	ProductID int64     `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}

// Service exposes wishlist persistence operations. Add and Remove are both
// idempotent; toggling is composed by the caller from Has plus one of them.
type Service interface {
	List(ctx context.Context) []Entry
	Add(ctx context.Context, productID int64) (Entry, error)
	Remove(ctx context.Context, productID int64) error
	Has(ctx context.Context, productID int64) (bool, error)
}

type service struct {
	store store.Store
	logg  *logger.Logger
	now   func() time.Time
}

// ServiceParams wires the wishlist service dependencies. Now is optional and
// defaults to time.Now; tests inject a fixed clock.
type ServiceParams struct {
	Store  store.Store
	Logger *logger.Logger
	Now    func() time.Time
}

// NewService builds a wishlist service backed by the persisted store.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{store: params.Store, logg: params.Logger, now: now}, nil
}

// List returns all saved entries. Listing is lenient: a storage failure
// degrades to an empty wishlist with a warning.
func (s *service) List(ctx context.Context) []Entry {
	var entries []Entry
	if err := s.store.Load(ctx, store.CollectionWishlist, &entries); err != nil {
		s.warn(ctx, "wishlist.list.degraded", err)
		return []Entry{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries
}

// Add saves a product. Adding a product that is already saved returns the
// existing entry unchanged, original timestamp included.
func (s *service) Add(ctx context.Context, productID int64) (Entry, error) {
	if productID <= 0 {
		return Entry{}, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}

	var entries []Entry
	if err := s.store.Load(ctx, store.CollectionWishlist, &entries); err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.ProductID == productID {
			return e, nil
		}
	}

	id, err := s.store.NextID(ctx, store.CollectionWishlist)
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{ID: id, ProductID: productID, AddedAt: s.now().UTC()}
	entries = append(entries, entry)
	if err := s.store.Save(ctx, store.CollectionWishlist, entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Remove drops a product from the wishlist. Removing an absent product is a
// no-op.
func (s *service) Remove(ctx context.Context, productID int64) error {
	var entries []Entry
	if err := s.store.Load(ctx, store.CollectionWishlist, &entries); err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ProductID == productID {
			entries = append(entries[:i], entries[i+1:]...)
			return s.store.Save(ctx, store.CollectionWishlist, entries)
		}
	}
	return nil
}

// Has reports whether a product is saved.
func (s *service) Has(ctx context.Context, productID int64) (bool, error) {
	var entries []Entry
	if err := s.store.Load(ctx, store.CollectionWishlist, &entries); err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithField(ctx, "error", err.Error())
	s.logg.Warn(ctx, msg)
}
