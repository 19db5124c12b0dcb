package catalog

import (
	"context"
	"fmt"

	"github.com/apper-canvas/stylehub-port-matrix/internal/store"
	pkgerrors "github.com/apper-canvas/stylehub-port-matrix/pkg/errors"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/logger"
)

// Repository gives read/write access to product and category records over the
// persisted store. Reads hand out snapshot copies: the store re-decodes the
// collection on every load, so callers can never reach the stored records.
type Repository struct {
	store store.Store
	logg  *logger.Logger
}

// NewRepository binds the catalog to a persisted store.
func NewRepository(st store.Store, logg *logger.Logger) (*Repository, error) {
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}
	return &Repository{store: st, logg: logg}, nil
}

// ListProducts returns all products. Listing is lenient: a storage failure
// degrades to an empty result with a warning, so browsing surfaces stay up
// while the store recovers. Mutations below stay strict.
func (r *Repository) ListProducts(ctx context.Context) []Product {
	var products []Product
	if err := r.store.Load(ctx, store.CollectionProducts, &products); err != nil {
		r.warn(ctx, "products.list.degraded", err)
		return []Product{}
	}
	return products
}

// GetProduct loads one product by identity.
func (r *Repository) GetProduct(ctx context.Context, id int64) (Product, error) {
	var products []Product
	if err := r.store.Load(ctx, store.CollectionProducts, &products); err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

// CreateProduct validates and stores a new product with the next identity.
func (r *Repository) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	var products []Product
	if err := r.store.Load(ctx, store.CollectionProducts, &products); err != nil {
		return Product{}, err
	}
	id, err := r.store.NextID(ctx, store.CollectionProducts)
	if err != nil {
		return Product{}, err
	}
	p.ID = id
	products = append(products, p)
	if err := r.store.Save(ctx, store.CollectionProducts, products); err != nil {
		return Product{}, err
	}
	return p, nil
}

// UpdateProduct replaces the record with the given identity.
func (r *Repository) UpdateProduct(ctx context.Context, id int64, p Product) (Product, error) {
	p.ID = id
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	var products []Product
	if err := r.store.Load(ctx, store.CollectionProducts, &products); err != nil {
		return Product{}, err
	}
	for i := range products {
		if products[i].ID == id {
			products[i] = p
			if err := r.store.Save(ctx, store.CollectionProducts, products); err != nil {
				return Product{}, err
			}
			return p, nil
		}
	}
	return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

// DeleteProduct removes the record with the given identity.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	var products []Product
	if err := r.store.Load(ctx, store.CollectionProducts, &products); err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == id {
			products = append(products[:i], products[i+1:]...)
			return r.store.Save(ctx, store.CollectionProducts, products)
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

// ListCategories returns all categories, lenient like ListProducts.
func (r *Repository) ListCategories(ctx context.Context) []Category {
	var categories []Category
	if err := r.store.Load(ctx, store.CollectionCategories, &categories); err != nil {
		r.warn(ctx, "categories.list.degraded", err)
		return []Category{}
	}
	return categories
}

// GetCategory loads one category by identity.
func (r *Repository) GetCategory(ctx context.Context, id int64) (Category, error) {
	var categories []Category
	if err := r.store.Load(ctx, store.CollectionCategories, &categories); err != nil {
		return Category{}, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
}

// CreateCategory validates and stores a new category.
func (r *Repository) CreateCategory(ctx context.Context, c Category) (Category, error) {
	if err := c.Validate(); err != nil {
		return Category{}, err
	}
	var categories []Category
	if err := r.store.Load(ctx, store.CollectionCategories, &categories); err != nil {
		return Category{}, err
	}
	id, err := r.store.NextID(ctx, store.CollectionCategories)
	if err != nil {
		return Category{}, err
	}
	c.ID = id
	categories = append(categories, c)
	if err := r.store.Save(ctx, store.CollectionCategories, categories); err != nil {
		return Category{}, err
	}
	return c, nil
}

// UpdateCategory replaces the record with the given identity.
func (r *Repository) UpdateCategory(ctx context.Context, id int64, c Category) (Category, error) {
	c.ID = id
	if err := c.Validate(); err != nil {
		return Category{}, err
	}
	var categories []Category
	if err := r.store.Load(ctx, store.CollectionCategories, &categories); err != nil {
		return Category{}, err
	}
	for i := range categories {
		if categories[i].ID == id {
			categories[i] = c
			if err := r.store.Save(ctx, store.CollectionCategories, categories); err != nil {
				return Category{}, err
			}
			return c, nil
		}
	}
	return Category{}, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
}

// DeleteCategory removes the record with the given identity.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	var categories []Category
	if err := r.store.Load(ctx, store.CollectionCategories, &categories); err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID == id {
			categories = append(categories[:i], categories[i+1:]...)
			return r.store.Save(ctx, store.CollectionCategories, categories)
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
}

func (r *Repository) warn(ctx context.Context, msg string, err error) {
	if r.logg == nil {
		return
	}
	ctx = r.logg.WithField(ctx, "error", err.Error())
	r.logg.Warn(ctx, msg)
}
