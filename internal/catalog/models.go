package catalog

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/apper-canvas/stylehub-port-matrix/pkg/errors"
)

var validate = validator.New()

// Product is a catalog record. Cart and wishlist only reference its identity;
// prices they carry are snapshots taken at add time.
type Product struct {
	ID              int64            `json:"Id"`
	Name            string           `json:"name" validate:"required"`
	Brand           string           `json:"brand" validate:"required"`
	Category        string           `json:"category" validate:"required"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice,omitempty"`
	Sizes           []string         `json:"sizes" validate:"required,min=1,dive,required"`
	Images          []string         `json:"images"`
	Rating          float64          `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount     int              `json:"reviewCount" validate:"gte=0"`
}

// EffectivePrice returns the discounted price when set, the base price
// otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}

// Clone returns a deep copy so callers can mutate results freely.
func (p Product) Clone() Product {
	out := p
	out.Sizes = append([]string(nil), p.Sizes...)
	out.Images = append([]string(nil), p.Images...)
	if p.DiscountedPrice != nil {
		dp := *p.DiscountedPrice
		out.DiscountedPrice = &dp
	}
	return out
}

// Validate applies the ingress schema: required fields, positive base price,
// discounted price not above the base price, at least one size, rating 0-5.
func (p Product) Validate() error {
	if err := validate.Struct(p); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product").
			WithDetails(validationDetails(err))
	}
	if !p.Price.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if p.DiscountedPrice != nil {
		if !p.DiscountedPrice.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "discounted price must be positive")
		}
		if p.DiscountedPrice.GreaterThan(p.Price) {
			return pkgerrors.New(pkgerrors.CodeValidation, "discounted price cannot exceed price")
		}
	}
	return nil
}

// Category is a navigation record for the storefront.
type Category struct {
	ID            int64    `json:"Id"`
	Name          string   `json:"name" validate:"required"`
	Image         string   `json:"image"`
	Subcategories []string `json:"subcategories"`
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	out := c
	out.Subcategories = append([]string(nil), c.Subcategories...)
	return out
}

// Validate applies the ingress schema for categories.
func (c Category) Validate() error {
	if err := validate.Struct(c); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category").
			WithDetails(validationDetails(err))
	}
	return nil
}

func validationDetails(err error) map[string]string {
	details := map[string]string{}
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = "failed " + fieldErr.Tag()
		}
	}
	return details
}
