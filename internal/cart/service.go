package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/stylehub-port-matrix/internal/store"
	pkgerrors "github.com/apper-canvas/stylehub-port-matrix/pkg/errors"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/logger"
)

// Line is one cart entry. The unit price is captured when the line is added
// and never refreshed from the catalog afterwards.
type Line struct {
	ID        int64           `json:"Id"`
	ProductID int64           `json:"productId"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}

// AddInput captures the payload for adding a line. The product identity is
// taken at face value; the cart never consults the catalog.
type AddInput struct {
	ProductID int64
	Size      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Service exposes cart persistence operations.
type Service interface {
	List(ctx context.Context) ([]Line, Totals)
	Add(ctx context.Context, input AddInput) (Line, error)
	UpdateQuantity(ctx context.Context, lineID int64, quantity int) (Line, error)
	Remove(ctx context.Context, lineID int64) error
	Clear(ctx context.Context) error
}

type service struct {
	store store.Store
	logg  *logger.Logger
}

// ServiceParams wires the cart service dependencies.
type ServiceParams struct {
	Store  store.Store
	Logger *logger.Logger
}

// NewService builds a cart service backed by the persisted store.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	return &service{store: params.Store, logg: params.Logger}, nil
}

// List returns the cart lines with derived totals. Listing is lenient: a
// storage failure degrades to an empty cart with a warning.
func (s *service) List(ctx context.Context) ([]Line, Totals) {
	var lines []Line
	if err := s.store.Load(ctx, store.CollectionCart, &lines); err != nil {
		s.warn(ctx, "cart.list.degraded", err)
		lines = []Line{}
	}
	if lines == nil {
		lines = []Line{}
	}
	return lines, ComputeTotals(lines)
}

// Add merges into an existing line on (product, size) by summing quantity,
// otherwise appends a line under the next identity.
func (s *service) Add(ctx context.Context, input AddInput) (Line, error) {
	if input.ProductID <= 0 {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	if input.Quantity < 1 {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if strings.TrimSpace(input.Size) == "" {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "size is required")
	}
	if input.UnitPrice.IsNegative() {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	var lines []Line
	if err := s.store.Load(ctx, store.CollectionCart, &lines); err != nil {
		return Line{}, err
	}

	for i := range lines {
		if lines[i].ProductID == input.ProductID && lines[i].Size == input.Size {
			lines[i].Quantity += input.Quantity
			if err := s.store.Save(ctx, store.CollectionCart, lines); err != nil {
				return Line{}, err
			}
			return lines[i], nil
		}
	}

	id, err := s.store.NextID(ctx, store.CollectionCart)
	if err != nil {
		return Line{}, err
	}
	line := Line{
		ID:        id,
		ProductID: input.ProductID,
		Size:      input.Size,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
	}
	lines = append(lines, line)
	if err := s.store.Save(ctx, store.CollectionCart, lines); err != nil {
		return Line{}, err
	}
	return line, nil
}

// UpdateQuantity replaces the quantity on a line. Quantities below one are
// rejected and the line is left untouched; removal is an explicit operation.
func (s *service) UpdateQuantity(ctx context.Context, lineID int64, quantity int) (Line, error) {
	if quantity < 1 {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var lines []Line
	if err := s.store.Load(ctx, store.CollectionCart, &lines); err != nil {
		return Line{}, err
	}
	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Quantity = quantity
			if err := s.store.Save(ctx, store.CollectionCart, lines); err != nil {
				return Line{}, err
			}
			return lines[i], nil
		}
	}
	return Line{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
}

// Remove deletes a line by identity.
func (s *service) Remove(ctx context.Context, lineID int64) error {
	var lines []Line
	if err := s.store.Load(ctx, store.CollectionCart, &lines); err != nil {
		return err
	}
	for i := range lines {
		if lines[i].ID == lineID {
			lines = append(lines[:i], lines[i+1:]...)
			return s.store.Save(ctx, store.CollectionCart, lines)
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
}

// Clear empties the cart unconditionally.
func (s *service) Clear(ctx context.Context) error {
	return s.store.Save(ctx, store.CollectionCart, []Line{})
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithField(ctx, "error", err.Error())
	s.logg.Warn(ctx, msg)
}
